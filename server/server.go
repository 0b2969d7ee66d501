// Package server exposes the payroll, work-days and cost runs over HTTP.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andpap18/thikishop-payroll/config"
	"github.com/andpap18/thikishop-payroll/processor"
)

// Server is the HTTP upload service.
type Server struct {
	router  *gin.Engine
	handler *Handler
}

// New creates a server from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.DownloadTTL()
	if err != nil {
		return nil, err
	}

	h := NewHandler(processor.New(opts), HandlerOptions{
		DefaultMonth: cfg.Payroll.DefaultMonth,
		DownloadTTL:  ttl,
		MaxUpload:    cfg.Server.MaxUploadMB << 20,
		Threshold:    opts.Threshold.String(),
		Logger:       logger,
	})

	s := &Server{router: gin.Default(), handler: h}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	s.handler.RegisterRoutes(api)
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on port until the process stops.
func (s *Server) Run(port int) error {
	return s.router.Run(fmt.Sprintf(":%d", port))
}
