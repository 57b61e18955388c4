// Package export writes CMS articles as Hugo content files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/samvad-content/pkg/richtext"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// Exporter renders articles into <Dir>/<slug>.md.
type Exporter struct {
	Dir     string
	Format  string
	BaseURL string
}

// New validates the output settings. An empty format means YAML.
func New(dir, format, baseURL string) (*Exporter, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("export directory is required")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatYAML
	}
	if format != FormatYAML && format != FormatTOML {
		return nil, fmt.Errorf("unsupported front matter format %q", format)
	}
	return &Exporter{Dir: dir, Format: format, BaseURL: baseURL}, nil
}

// Render returns the complete content file for a.
func (e *Exporter) Render(a strapi.Article) ([]byte, error) {
	head, err := encode(NewFrontMatter(a, e.BaseURL), e.Format)
	if err != nil {
		return nil, err
	}
	body := renderBody(a, e.BaseURL)
	if body == "" {
		return head, nil
	}
	return append(head, []byte("\n"+body+"\n")...), nil
}

// Export writes every article and returns the paths written. Failures are
// reported per article and do not stop the remaining writes.
func (e *Exporter) Export(articles []strapi.Article) ([]string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	var (
		written []string
		errs    []error
	)
	for _, a := range articles {
		path, err := e.path(a.Slug)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		content, err := e.Render(a)
		if err != nil {
			errs = append(errs, fmt.Errorf("render %s: %w", a.Slug, err))
			continue
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", a.Slug, err))
			continue
		}
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}

// path maps a slug to a file directly inside the export directory.
func (e *Exporter) path(slug string) (string, error) {
	s := strings.TrimSpace(slug)
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) || filepath.Clean(s) != s {
		return "", fmt.Errorf("invalid slug %q", slug)
	}
	return filepath.Join(e.Dir, s+".md"), nil
}

func renderBody(a strapi.Article, baseURL string) string {
	var parts []string
	if body := richtext.Render(a.Body); body != "" {
		parts = append(parts, body)
	}
	for _, b := range a.Blocks {
		if part := renderBlock(b, baseURL); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b strapi.Block, baseURL string) string {
	switch v := b.(type) {
	case strapi.RichTextBlock:
		return richtext.Render(v.Body)
	case strapi.QuoteBlock:
		return renderQuote(v)
	case strapi.MediaBlock:
		return image(baseURL, v.File)
	case strapi.SliderBlock:
		imgs := make([]string, 0, len(v.Files))
		for i := range v.Files {
			if md := image(baseURL, &v.Files[i]); md != "" {
				imgs = append(imgs, md)
			}
		}
		return strings.Join(imgs, "\n")
	default:
		return ""
	}
}

func renderQuote(q strapi.QuoteBlock) string {
	text := strings.TrimSpace(richtext.PlainText(q.Body))
	if text == "" {
		return ""
	}
	lines := []string{"> " + text}
	if title := strings.TrimSpace(q.Title); title != "" {
		lines = append(lines, ">", "> -- "+title)
	}
	return strings.Join(lines, "\n")
}

func image(baseURL string, img *strapi.Image) string {
	url := strapi.ResolveImageURL(baseURL, img)
	if url == "" {
		return ""
	}
	return "![](" + url + ")"
}
