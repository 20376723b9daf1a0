package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// adminCookieMaxAge keeps an admin session for 24 hours.
const adminCookieMaxAge = 3600 * 24

// registerAdminRoutes wires the stats dashboard. Credentials come from
// configuration; the session token is random per process.
func (s *Server) registerAdminRoutes() {
	r := s.engine

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", s.pageData("Admin login", "", gin.H{}))
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Admin.Password)) == 1
		if !userOK || !passOK {
			s.log.Warn("failed admin login", zap.String("from", s.visits.HashIP(c.ClientIP())))
			c.HTML(http.StatusUnauthorized, "admin-login.html", s.pageData("Admin login", "", gin.H{
				"Error": "Invalid credentials",
			}))
			return
		}

		c.SetCookie("admin_token", s.adminToken, adminCookieMaxAge, "/admin", "", false, true)
		s.log.Info("admin login", zap.String("from", s.visits.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.visits.Stats()
		if err != nil {
			s.log.Error("load admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", s.pageData("Admin", "", gin.H{
				"Error": "Failed to load statistics",
			}))
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", s.pageData("Admin", "", gin.H{
			"Stats": stats,
		}))
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.visits.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visits, err := s.visits.Recent(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", s.pageData("Admin", "", gin.H{
				"Error": "Failed to load visitors",
			}))
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", s.pageData("Admin", "", gin.H{
			"Visits": visits,
		}))
	})

	admin.POST("/cleanup", func(c *gin.Context) {
		deleted, err := s.visits.Cleanup()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	})
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
