package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sluglib "github.com/goliatone/go-slug"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Scaffold a markdown post with frontmatter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		title := strings.Join(args, " ")
		slug, err := sluglib.Normalize(title)
		if err != nil {
			return fmt.Errorf("derive slug from %q: %w", title, err)
		}

		path := filepath.Join(cfg.ContentDir, slug+".md")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("post already exists: %s", path)
		}

		body := fmt.Sprintf(`---
title: %q
slug: %s
excerpt: ""
tags: []
date: %s
draft: true
---

Write here.
`, title, slug, time.Now().Format("2006-01-02"))

		if err := os.MkdirAll(cfg.ContentDir, 0o755); err != nil {
			return fmt.Errorf("create content dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("write post: %w", err)
		}

		fmt.Printf("Created %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
