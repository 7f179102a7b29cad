package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	summarizerdocs "github.com/janhq/jan-summarizer/docs/swagger"
	"github.com/janhq/jan-summarizer/internal/config"
	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/auth"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/handlers"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/routes"
)

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the HTTP server with default middleware and routes.
func New(cfg *config.Config, log zerolog.Logger, summaryService summary.Service, lifecycle model.Lifecycle, authValidator *auth.Validator) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	summarizerdocs.SwaggerInfo.BasePath = "/"
	summarizerdocs.SwaggerInfo.Version = cfg.ServiceVersion

	httpLog := log.With().Str("component", "http").Logger()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.RequestID())
	engine.Use(middlewares.TracingMiddleware(cfg.ServiceName))
	engine.Use(middlewares.LoggingMiddleware(httpLog))
	engine.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	engine.Use(middlewares.MetricsMiddleware())

	handlerProvider := handlers.NewProvider(summaryService, lifecycle)
	routeProvider := routes.NewProvider(handlerProvider, httpLog)

	var apiMiddleware []gin.HandlerFunc
	if authValidator != nil {
		apiMiddleware = append(apiMiddleware, authValidator.Middleware())
	}
	registerCoreRoutes(engine, cfg, lifecycle)
	routeProvider.Register(engine, apiMiddleware...)

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    httpLog,
	}
}

// Handler exposes the engine for tests and embedding.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
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

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, lifecycle model.Lifecycle) {
	engine.GET("/", func(c *gin.Context) {
		status := lifecycle.Status()
		c.JSON(http.StatusOK, gin.H{
			"service":      cfg.ServiceName,
			"status":       "ok",
			"model_loaded": status.Loaded,
			"device":       status.Device,
		})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		status := lifecycle.Status()
		if !status.Loaded {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"state":  status.State,
				"error":  status.Error,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
