package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/samvad-content/pkg/richtext"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

const summaryExcerptRunes = 160

func newArticlesCmd(e *env) *cobra.Command {
	var publishedOnly bool
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"ls"},
		Short:   "List articles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			articles, err := e.api.Articles(cmd.Context())
			if err != nil {
				return err
			}
			if publishedOnly {
				articles = strapi.PublishedArticles(articles)
			}
			if e.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), articles)
			}

			rows := make([][]string, 0, len(articles))
			for _, a := range articles {
				rows = append(rows, []string{
					a.Slug,
					a.Title,
					string(a.Status),
					strapi.FormatDate(a.PublishedAt),
					categoryName(a.Category),
					tagNames(a.Tags),
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"slug", "title", "status", "published", "category", "tags"}, rows)
		},
	}
	cmd.Flags().BoolVar(&publishedOnly, "published", false, "only list published articles")
	return cmd
}

func newArticleCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "article <slug>",
		Short: "Show a single article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, found, err := e.api.Article(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("article %q not found", args[0])
			}
			if e.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), a)
			}

			author := ""
			if a.Author != nil {
				author = a.Author.Name
			}
			rows := [][]string{
				{"title", a.Title},
				{"slug", a.Slug},
				{"status", string(a.Status)},
				{"published", strapi.FormatDate(a.PublishedAt)},
				{"author", author},
				{"category", categoryName(a.Category)},
				{"tags", tagNames(a.Tags)},
				{"meta title", strapi.MetaTitle(a)},
				{"meta description", strapi.MetaDescription(a)},
				{"image", e.api.ImageURL(a.FeaturedImage)},
				{"blocks", blockSummary(a.Blocks)},
				{"excerpt", richtext.Excerpt(a.Body, summaryExcerptRunes)},
			}
			return writeTable(cmd.OutOrStdout(), []string{"field", "value"}, rows)
		},
	}
}

func newCategoriesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := e.api.Categories(cmd.Context())
			if err != nil {
				return err
			}
			if e.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), cats)
			}
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{c.Name, c.Slug})
			}
			return writeTable(cmd.OutOrStdout(), []string{"name", "slug"}, rows)
		},
	}
}

func newAuthorsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			authors, err := e.api.Authors(cmd.Context())
			if err != nil {
				return err
			}
			if e.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), authors)
			}
			rows := make([][]string, 0, len(authors))
			for _, a := range authors {
				rows = append(rows, []string{a.Name, a.Slug, e.api.ImageURL(a.ProfileImage)})
			}
			return writeTable(cmd.OutOrStdout(), []string{"name", "slug", "image"}, rows)
		},
	}
}

func newTagsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := e.api.Tags(cmd.Context())
			if err != nil {
				return err
			}
			if e.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), tags)
			}
			rows := make([][]string, 0, len(tags))
			for _, t := range tags {
				rows = append(rows, []string{t.Name, t.Slug})
			}
			return writeTable(cmd.OutOrStdout(), []string{"name", "slug"}, rows)
		},
	}
}

func categoryName(c *strapi.Category) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func tagNames(tags []strapi.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// blockSummary lists block components in order, e.g. "shared.quote, shared.media".
func blockSummary(blocks []strapi.Block) string {
	names := make([]string, 0, len(blocks))
	for _, b := range blocks {
		names = append(names, b.Component())
	}
	return strings.Join(names, ", ")
}
