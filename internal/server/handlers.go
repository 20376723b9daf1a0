package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/site"
)

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/", s.handleHome)
	r.GET("/blog", s.handleBlogIndex)
	r.GET("/blog/:slug", s.handleBlogShow)
	r.GET("/tags/:tag", s.handleTag)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContactSubmit)
	r.GET("/privacy", s.handlePrivacy)
	r.GET("/healthz", s.handleHealthz)
	r.NoRoute(s.handleNotFound)
}

// handleHome renders the full page. The category filter works client-side
// over data-categories; the query parameter covers noscript and direct links.
func (s *Server) handleHome(c *gin.Context) {
	category := c.Query("category")
	c.HTML(http.StatusOK, "index.html", s.pageData(
		site.Owner.Name+" — "+site.Owner.Title,
		"Portfolio and blog of "+site.Owner.Name+", "+site.Owner.Title+".",
		gin.H{
			"Projects":       site.ProjectsByCategory(site.Projects, category),
			"Categories":     site.Categories(site.Projects),
			"ActiveCategory": category,
			"Featured":       s.store.Featured(),
		},
	))
}

func (s *Server) handleBlogIndex(c *gin.Context) {
	tag := c.Query("tag")
	posts := s.store.All()
	if tag != "" {
		posts = s.store.ByTag(tag)
	}

	c.HTML(http.StatusOK, "blog.html", s.pageData(
		"Blog — "+site.Owner.Name,
		"Articles on machine learning systems and tooling.",
		gin.H{
			"Posts":     posts,
			"Tags":      s.store.Tags(),
			"ActiveTag": tag,
		},
	))
}

func (s *Server) handleBlogShow(c *gin.Context) {
	slug := c.Param("slug")
	post, err := s.store.BySlug(slug)
	if err != nil {
		s.log.Info("post not found", zap.String("slug", slug))
		c.HTML(http.StatusNotFound, "notfound.html", s.pageData(
			"Not found — "+site.Owner.Name,
			"",
			gin.H{"Message": "Sorry, this article failed to load. It may have moved or never existed."},
		))
		return
	}

	c.HTML(http.StatusOK, "post.html", s.pageData(
		post.Title+" — "+site.Owner.Name,
		post.Excerpt,
		gin.H{"Post": post},
	))
}

func (s *Server) handleTag(c *gin.Context) {
	tag := c.Param("tag")
	c.HTML(http.StatusOK, "blog.html", s.pageData(
		"Tag: "+tag+" — "+site.Owner.Name,
		"Articles tagged "+tag+".",
		gin.H{
			"Posts":     s.store.ByTag(tag),
			"Tags":      s.store.Tags(),
			"ActiveTag": tag,
		},
	))
}

// handleContactForm returns just the form markup for HTMX swaps.
func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", s.pageData("Contact", "", gin.H{}))
}

// handleContactSubmit validates the submission and either relays it over
// SMTP or, when no relay is configured, hands back a prefilled mailto link.
// Both outcomes render an HTMX fragment.
func (s *Server) handleContactSubmit(c *gin.Context) {
	sub := site.ContactSubmission{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	if err := sub.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", s.pageData("Contact", "", gin.H{
			"Error": "Please check the form: " + err.Error(),
		}))
		return
	}

	if !s.cfg.SMTPConfigured() {
		c.HTML(http.StatusOK, "contact-mailto.html", s.pageData("Contact", "", gin.H{
			"MailtoURL": site.MailtoURL(site.Owner.Email, sub),
			"Email":     site.Owner.Email,
		}))
		return
	}

	if err := s.mailer.Send(sub); err != nil {
		s.log.Error("contact relay failed", zap.Error(err))
		c.HTML(http.StatusOK, "contact-error.html", s.pageData("Contact", "", gin.H{
			"Error": "Sorry, there was an error sending your message. Please try again later.",
		}))
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", s.pageData("Contact", "", gin.H{
		"Success": "Thank you for your message! I'll get back to you soon.",
	}))
}

func (s *Server) handlePrivacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", s.pageData(
		"Privacy — "+site.Owner.Name,
		"Privacy policy.",
		gin.H{},
	))
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"posts":  len(s.store.All()),
	})
}

func (s *Server) handleNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", s.pageData(
		"Not found — "+site.Owner.Name,
		"",
		gin.H{"Message": "The page you are looking for does not exist."},
	))
}
