package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gomcpgo/logo_image_ai/pkg/config"
	"github.com/gomcpgo/logo_image_ai/pkg/logger"
	"github.com/gomcpgo/logo_image_ai/pkg/metrics"
)

// Server wraps the gin engine with graceful shutdown helpers.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// NewServer constructs the HTTP server with default middleware and routes.
func NewServer(cfg *config.Config, log zerolog.Logger, h *LogoHandler) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	httpLog := logger.Component(log, "http")

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog(httpLog))
	if cfg.MetricsEnabled {
		engine.Use(Metrics())
	}
	registerRoutes(engine, cfg, h)

	return &Server{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerRoutes(engine *gin.Engine, cfg *config.Config, h *LogoHandler) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "provider": h.provider.Name()})
	})

	if cfg.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := engine.Group("/api")
	api.POST("/generate-logo", h.GenerateLogo)
	api.POST("/compose-logo", h.ComposeLogo)
	api.POST("/generate-image", h.GenerateImage)
	api.POST("/ai/generate-image", h.ProviderGenerate)
	api.GET("/styles", h.ListStyles)
}
