// Package server wires the Gin engine: HTML templates, static assets, public
// routes, the HTMX contact endpoints, and the admin dashboard.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/config"
	"github.com/dsolberg/folio/internal/content"
	"github.com/dsolberg/folio/internal/metrics"
	"github.com/dsolberg/folio/internal/site"
)

// Mailer sends a contact submission. The default implementation relays over
// SMTP; tests substitute their own.
type Mailer interface {
	Send(sub site.ContactSubmission) error
}

// Server owns the engine and its collaborators.
type Server struct {
	cfg        *config.Config
	store      *content.Store
	visits     *metrics.Store
	log        *zap.Logger
	engine     *gin.Engine
	mailer     Mailer
	adminToken string
	static     bool
}

// Option customizes a Server before routes are registered.
type Option func(*Server)

// WithMailer overrides the SMTP mailer.
func WithMailer(m Mailer) Option {
	return func(s *Server) { s.mailer = m }
}

// WithStaticSite renders pages for static hosting: no server answers after
// deployment, so the contact form constructs its mailto link client-side
// instead of posting back.
func WithStaticSite() Option {
	return func(s *Server) { s.static = true }
}

// New builds the engine. visits may be nil, in which case tracking and the
// admin dashboard are disabled (the static export runs this way).
func New(cfg *config.Config, store *content.Store, visits *metrics.Store, log *zap.Logger, opts ...Option) (*Server, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	token, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		store:      store,
		visits:     visits,
		log:        log,
		mailer:     &smtpMailer{cfg: cfg, log: log},
		adminToken: token,
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger(), s.trackVisits())
	engine.SetFuncMap(templateFuncs())
	engine.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))
	engine.Static("/static", cfg.StaticDir)

	s.engine = engine
	s.registerRoutes()
	if s.visits != nil && cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		s.registerAdminRoutes()
	}

	return s, nil
}

// Engine exposes the underlying gin engine for the static exporter and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP listener.
func (s *Server) Run() error {
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))
	return s.engine.Run(s.cfg.Addr)
}

// base returns the prefix prepended to every internal link and asset URL. It
// is empty when the site is hosted at the root.
func (s *Server) base() string {
	if s.cfg.BasePath == "/" {
		return ""
	}
	return s.cfg.BasePath
}

// pageData assembles the common template data: profile, nav sections, base
// path, and the per-page title/description meta.
func (s *Server) pageData(title, description string, extra gin.H) gin.H {
	data := gin.H{
		"Base":        s.base(),
		"Site":        site.Owner,
		"Sections":    site.Sections,
		"Year":        time.Now().Year(),
		"Title":       title,
		"Description": description,
		"Static":      s.static,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// trackVisits records page views with the privacy rules from the metrics
// package: asset and admin paths are skipped and Do Not Track is honored.
func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.visits == nil {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/admin") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/healthz") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		go s.visits.Record(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

func randomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func templateFuncs() map[string]any {
	return map[string]any{
		"datefmt": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"join": strings.Join,
	}
}
