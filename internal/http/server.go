package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mediatekformation/internal/config"
	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/db"
	"github.com/mediatekformation/internal/domain"
	"github.com/mediatekformation/internal/oauth"
	"github.com/mediatekformation/internal/paths"
	"github.com/mediatekformation/internal/service"
)

// Server wraps the HTTP server
type Server struct {
	config           *config.Config
	database         *db.DB // health checks only
	formationService domain.FormationService
	oauthClients     *oauth.Registry
	engine           *gin.Engine
	logger           *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, database *db.DB, logger *slog.Logger) (*Server, error) {
	// Set Gin mode based on environment
	if cfg.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	// Middleware - order matters
	engine.Use(securityHeadersMiddleware())
	engine.Use(cacheControlMiddleware())
	engine.Use(loggerMiddleware(logger))
	engine.Use(formBodyLimitMiddleware(maxBodySize))

	// Request body size limit
	engine.MaxMultipartMemory = maxBodySize

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(templates)

	server := &Server{
		config:           cfg,
		database:         database,
		formationService: service.NewFormationService(database, logger),
		oauthClients:     oauth.NewRegistry(cfg),
		engine:           engine,
		logger:           logger,
	}

	server.setupRoutes()

	return server, nil
}

const (
	maxBodySize     = 1 << 20 // 1MB, forms only carry text
	readTimeout     = 30 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.ServerAddress
	if addr == "" {
		addr = ":8080"
	}

	// Configure server with timeouts
	server := &http.Server{
		Addr:           addr,
		Handler:        s.engine,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// securityHeadersMiddleware adds security-related HTTP headers
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		// Prevent clickjacking
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// Video thumbnails come from YouTube
		c.Writer.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' https://i.ytimg.com; frame-ancestors 'none'")
		// HSTS (only if using HTTPS)
		if c.Request.TLS != nil {
			c.Writer.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// cacheControlMiddleware sets appropriate cache headers based on the path
func cacheControlMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, paths.Static+"/") {
			c.Writer.Header().Set("Cache-Control", "public, max-age=86400")
		} else {
			// Admin pages and OAuth redirects are never cached
			c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Writer.Header().Set("Pragma", "no-cache")
			c.Writer.Header().Set("Expires", "0")
		}

		c.Next()
	}
}

// formBodyLimitMiddleware limits the size of submitted forms
func formBodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			if c.Request.ContentLength > maxBytes {
				c.AbortWithStatus(http.StatusRequestEntityTooLarge)
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// loggerMiddleware logs HTTP requests once they are served
func loggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.InfoContext(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"remote_addr", c.Request.RemoteAddr,
		)
	}
}
