// Package cmd holds the folio CLI: serve runs the site, build exports it to
// static HTML, new scaffolds a post.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/config"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:          "folio",
	Short:        "Personal portfolio site: server, static builder, and post scaffolding",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing folio.yaml")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads configuration and builds the logger the commands share.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	var log *zap.Logger
	if cfg.Debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	return cfg, log, nil
}
