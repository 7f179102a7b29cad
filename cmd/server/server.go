package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/jan-summarizer/internal/config"
	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/inference"
	"github.com/janhq/jan-summarizer/internal/infrastructure/logger"
	"github.com/janhq/jan-summarizer/internal/infrastructure/observability"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver"
)

// @title Summarizer API
// @version 1.0
// @description Summarizes text with a pretrained sequence-to-sequence model.
// @BasePath /
type Application struct {
	cfg        *config.Config
	httpServer *httpserver.HttpServer
	models     *model.Manager
	log        zerolog.Logger
}

func NewApplication(cfg *config.Config, httpServer *httpserver.HttpServer, models *model.Manager, log zerolog.Logger) *Application {
	return &Application{
		cfg:        cfg,
		httpServer: httpServer,
		models:     models,
		log:        log,
	}
}

// Start serves HTTP and, when configured, loads the model alongside.
// A failed startup load is logged and leaves the server running.
func (a *Application) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.httpServer.Run(gctx)
	})

	if a.cfg.ModelLoadOnStart {
		g.Go(func() error {
			a.log.Info().Msg("Loading model on startup...")
			status, err := a.models.Load(gctx)
			if err != nil {
				a.log.Error().Str("error", status.Error).Msg("Failed to load model")
				return nil
			}
			a.log.Info().Str("device", status.Device).Msg("Model loaded successfully")
			return nil
		})
	}

	err := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if _, unloadErr := a.models.Unload(shutdownCtx); unloadErr != nil {
		a.log.Warn().Err(unloadErr).Msg("release model on shutdown")
	}
	return err
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)
	printBanner(os.Stdout, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetryProvider, err := observability.Setup(ctx, observability.ConfigFromService(cfg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	repository, closeRepository, err := newSummaryRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize summary history")
	}
	defer closeRepository()

	authValidator, err := newAuthValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	results, closeCache, err := newSummaryCache(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize summary cache")
	}
	defer closeCache()

	loader := inference.NewLoader(newRuntimeClient(cfg, log), log)
	manager := newModelManager(loader, cfg, results, log)

	pool, stopPool := newGenerationPool(cfg, log)
	defer stopPool()

	summaryService := summary.NewService(newSummarySettings(cfg), manager, repository, results, pool, newSanitizer(cfg), log)

	httpServer := httpserver.New(cfg, log, summaryService, manager, authValidator)
	app := NewApplication(cfg, httpServer, manager, log)

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func printBanner(w io.Writer, cfg *config.Config) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Summarizer API")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Device: %s\n", cfg.ModelDevice)
	fmt.Fprintf(w, "Model Directory: %s\n", cfg.ModelDir)
	fmt.Fprintf(w, "Model Runtime: %s\n", cfg.InferenceBaseURL)
	fmt.Fprintf(w, "Listening on http://localhost:%d\n", cfg.HTTPPort)
	fmt.Fprintln(w, rule)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
