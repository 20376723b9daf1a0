package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/content"
	"github.com/dsolberg/folio/internal/markdown"
	"github.com/dsolberg/folio/internal/metrics"
	"github.com/dsolberg/folio/internal/server"
)

// cleanupInterval is how often old visit records are purged while serving.
const cleanupInterval = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
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

		visits, err := metrics.Open(cfg.DatabasePath, log)
		if err != nil {
			return fmt.Errorf("open metrics store: %w", err)
		}
		defer visits.Close()

		srv, err := server.New(cfg, store, visits, log)
		if err != nil {
			return fmt.Errorf("build server: %w", err)
		}

		go watchContent(ctx, store, log)
		go cleanupLoop(ctx, visits, log)

		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func watchContent(ctx context.Context, store *content.Store, log *zap.Logger) {
	if err := store.Watch(ctx); err != nil && ctx.Err() == nil {
		log.Warn("content watcher stopped", zap.Error(err))
	}
}

func cleanupLoop(ctx context.Context, visits *metrics.Store, log *zap.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	if _, err := visits.Cleanup(); err != nil {
		log.Warn("visit cleanup failed", zap.Error(err))
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := visits.Cleanup(); err != nil {
				log.Warn("visit cleanup failed", zap.Error(err))
			}
		}
	}
}
