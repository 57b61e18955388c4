package export

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// Supported front matter formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FrontMatter is the Hugo page metadata written for an article.
type FrontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Slug        string   `yaml:"slug" toml:"slug"`
	Date        string   `yaml:"date,omitempty" toml:"date,omitempty"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Draft       bool     `yaml:"draft" toml:"draft"`
	Author      string   `yaml:"author,omitempty" toml:"author,omitempty"`
	Categories  []string `yaml:"categories,omitempty" toml:"categories,omitempty"`
	Tags        []string `yaml:"tags,omitempty" toml:"tags,omitempty"`
	Image       string   `yaml:"image,omitempty" toml:"image,omitempty"`
}

// NewFrontMatter maps an article onto Hugo front matter. Relative image
// paths are resolved against baseURL.
func NewFrontMatter(a strapi.Article, baseURL string) FrontMatter {
	fm := FrontMatter{
		Title:       a.Title,
		Slug:        a.Slug,
		Date:        a.PublishedAt,
		Description: strapi.MetaDescription(a),
		Draft:       !a.IsPublished(),
		Image:       strapi.ResolveImageURL(baseURL, a.FeaturedImage),
	}
	if a.Author != nil {
		fm.Author = a.Author.Name
	}
	if a.Category != nil && a.Category.Name != "" {
		fm.Categories = []string{a.Category.Name}
	}
	for _, t := range a.Tags {
		if t.Name != "" {
			fm.Tags = append(fm.Tags, t.Name)
		}
	}
	return fm
}

// encode renders fm between the delimiters Hugo expects for format.
func encode(fm FrontMatter, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fm); err != nil {
			return nil, fmt.Errorf("encode yaml front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml front matter: %w", err)
		}
		buf.WriteString("---\n")
	case FormatTOML:
		buf.WriteString("+++\n")
		if err := toml.NewEncoder(&buf).Encode(fm); err != nil {
			return nil, fmt.Errorf("encode toml front matter: %w", err)
		}
		buf.WriteString("+++\n")
	default:
		return nil, fmt.Errorf("unsupported front matter format %q", format)
	}
	return buf.Bytes(), nil
}
