// Package cli implements the cmsctl commands for inspecting CMS content.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/samvad-content/internal/config"
	"github.com/samvad-hq/samvad-content/internal/logger"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// Loader resolves configuration and a CMS client for a command run.
type Loader func() (*config.Config, strapi.ContentAPI, error)

// DefaultLoader reads config from the environment and builds a Strapi client
// that logs to stderr.
func DefaultLoader() (*config.Config, strapi.ContentAPI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, strapi.New(cfg.Strapi(), strapi.WithLogger(log)), nil
}

// env is shared by all subcommands once the root pre-run resolved it.
type env struct {
	load       Loader
	cfg        *config.Config
	api        strapi.ContentAPI
	jsonOutput bool
}

// NewRootCmd builds the cmsctl command tree. A nil loader uses DefaultLoader.
func NewRootCmd(load Loader) *cobra.Command {
	if load == nil {
		load = DefaultLoader
	}
	e := &env{load: load}

	root := &cobra.Command{
		Use:   "cmsctl",
		Short: "Inspect and export Strapi CMS content",
		Long: `cmsctl reads articles, categories, authors and tags from the configured
Strapi instance.

Example usage:
  cmsctl articles --published   # List published articles
  cmsctl article hello-world    # Show one article
  cmsctl export --format toml   # Write Hugo content files`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, api, err := e.load()
			if err != nil {
				return err
			}
			e.cfg, e.api = cfg, api
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&e.jsonOutput, "json", false, "output as JSON")

	root.AddCommand(
		newArticlesCmd(e),
		newArticleCmd(e),
		newCategoriesCmd(e),
		newAuthorsCmd(e),
		newTagsCmd(e),
		newExportCmd(e),
	)
	return root
}
