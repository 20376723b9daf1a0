// Package config loads site configuration from folio.yaml and FOLIO_*
// environment variables. A .env file in the working directory is honored in
// development via godotenv autoload in main.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SMTP holds the optional outbound mail relay settings. When User and Pass
// are empty the contact form falls back to rendering a mailto link.
type SMTP struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

// Admin holds the dashboard credentials. Empty values disable admin routes.
type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Config is the full runtime configuration for both serve and build modes.
//
// BasePath prefixes every rendered link and is meant for the static build,
// where the site may be hosted under a subdirectory (GitHub Pages project
// sites). folio serve always mounts its routes at the root, so leave
// BasePath at "/" when serving.
type Config struct {
	Addr          string `mapstructure:"addr"`
	BaseURL       string `mapstructure:"base_url"`
	BasePath      string `mapstructure:"base_path"`
	ContentDir    string `mapstructure:"content_dir"`
	TemplatesDir  string `mapstructure:"templates_dir"`
	StaticDir     string `mapstructure:"static_dir"`
	OutputDir     string `mapstructure:"output_dir"`
	DatabasePath  string `mapstructure:"database_path"`
	IncludeDrafts bool   `mapstructure:"include_drafts"`
	Debug         bool   `mapstructure:"debug"`
	SMTP          SMTP   `mapstructure:"smtp"`
	Admin         Admin  `mapstructure:"admin"`
}

// SMTPConfigured reports whether the relay path of the contact form is usable.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.User != "" && c.SMTP.Pass != ""
}

// Load reads folio.yaml from dir (optional) and applies FOLIO_* environment
// overrides, e.g. FOLIO_ADDR or FOLIO_SMTP_HOST.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("base_path", "/")
	v.SetDefault("content_dir", "content/posts")
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("static_dir", "static")
	v.SetDefault("output_dir", "dist")
	v.SetDefault("database_path", "folio.db")
	v.SetDefault("include_drafts", false)
	v.SetDefault("debug", false)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	// Empty defaults register the keys so AutomaticEnv can override them.
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")

	v.SetConfigName("folio")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if !strings.HasPrefix(cfg.BasePath, "/") {
		cfg.BasePath = "/" + cfg.BasePath
	}
	if cfg.BasePath != "/" {
		cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")
	}

	return cfg, nil
}
