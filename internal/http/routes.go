package http

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediatekformation/internal/paths"
)

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.engine.GET(paths.Health, s.health)

	static, _ := fs.Sub(assets, "static")
	s.engine.StaticFS(paths.Static, http.FS(static))

	// OAuth routes
	s.engine.GET(paths.OAuthLogin, s.oauthLogin)
	s.engine.GET(paths.OAuthCallback, s.oauthCallback)
	s.engine.GET(paths.Logout, s.logout)

	s.setupAdminRoutes(s.engine.Group(paths.Admin))

	s.engine.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page introuvable")
	})
}

func (s *Server) setupAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("", s.listFormations)

	admin.GET("/del.formation/:id", s.deleteFormation)
	admin.POST("/del.formation/:id", s.deleteFormation)

	admin.GET("/edit/:id", s.editFormation)
	admin.POST("/edit/:id", s.editFormation)

	admin.GET("/add", s.addFormation)
	admin.POST("/add", s.addFormation)

	// The table segment is optional
	formations := admin.Group("/formations")
	{
		formations.GET("/tri/:champ/:ordre", s.sortFormations)
		formations.GET("/tri/:champ/:ordre/:table", s.sortFormations)

		formations.GET("/recherche/:champ", s.searchFormations)
		formations.POST("/recherche/:champ", s.searchFormations)
		formations.GET("/recherche/:champ/:table", s.searchFormations)
		formations.POST("/recherche/:champ/:table", s.searchFormations)
	}
}

// health reports liveness and database reachability
func (s *Server) health(c *gin.Context) {
	if err := s.database.Health(c.Request.Context()); err != nil {
		s.logger.ErrorContext(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "formations-admin",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "formations-admin",
	})
}
