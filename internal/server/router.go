package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/engine"
)

// Config holds the transport settings.
type Config struct {
	Address        string
	AllowedOrigins []string
	Debug          bool
}

// Server exposes the interview engine over HTTP.
type Server struct {
	router *gin.Engine
	addr   string
}

// New builds the gin router around an engine.
func New(cfg Config, eng *engine.Engine, logger *zap.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
		}))
	}

	handler := newStepHandler(eng, logger)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/interview/step", handler.Step)
	}

	return &Server{router: router, addr: cfg.Address}
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	return s.router.Run(s.addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
