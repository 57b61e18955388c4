package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/samvad-content/pkg/export"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

func newExportCmd(e *env) *cobra.Command {
	var dir, format string
	var includeDrafts bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write articles as Hugo content files",
		Long: `Export fetches every published article with its blocks and writes one
markdown file per slug with YAML or TOML front matter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = e.cfg.ExportDir
			}
			if format == "" {
				format = e.cfg.ExportFormat
			}
			exp, err := export.New(dir, format, e.cfg.StrapiURL)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			summaries, err := e.api.Articles(ctx)
			if err != nil {
				return err
			}
			if !includeDrafts {
				summaries = strapi.PublishedArticles(summaries)
			}

			articles := make([]strapi.Article, 0, len(summaries))
			for _, s := range summaries {
				full, found, err := e.api.Article(ctx, s.Slug)
				if err != nil {
					return err
				}
				if found {
					articles = append(articles, full)
				}
			}

			written, err := exp.Export(articles)
			if e.jsonOutput {
				if jerr := writeJSON(cmd.OutOrStdout(), written); jerr != nil {
					return jerr
				}
			} else {
				for _, p := range written {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from export_dir)")
	cmd.Flags().StringVar(&format, "format", "", "front matter format: yaml or toml (default from export_format)")
	cmd.Flags().BoolVar(&includeDrafts, "drafts", false, "also export draft articles")
	return cmd
}
