package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsolberg/folio/internal/content"
	"github.com/dsolberg/folio/internal/export"
	"github.com/dsolberg/folio/internal/markdown"
	"github.com/dsolberg/folio/internal/server"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the whole site to static HTML in the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		renderer := markdown.New(markdown.Options{Unsafe: true})
		store := content.NewStore(content.StoreConfig{
			Dir:           cfg.ContentDir,
			IncludeDrafts: cfg.IncludeDrafts,
		}, renderer, log)

		ctx := cmd.Context()
		if err := store.Load(ctx); err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		// No metrics store: the export never tracks and carries no admin UI.
		srv, err := server.New(cfg, store, nil, log, server.WithStaticSite())
		if err != nil {
			return fmt.Errorf("build server: %w", err)
		}

		result, err := export.New(srv.Engine(), store, cfg, log).Build(ctx)
		if err != nil {
			return fmt.Errorf("static build: %w", err)
		}

		fmt.Printf("Built %d pages and %d assets into %s\n", result.Pages, result.Assets, result.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
