package main

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/jan-summarizer/internal/config"
	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/auth"
	"github.com/janhq/jan-summarizer/internal/infrastructure/cache"
	"github.com/janhq/jan-summarizer/internal/infrastructure/database"
	"github.com/janhq/jan-summarizer/internal/infrastructure/inference"
	"github.com/janhq/jan-summarizer/internal/infrastructure/metrics"
	"github.com/janhq/jan-summarizer/internal/infrastructure/repository/summaryrepo"
	"github.com/janhq/jan-summarizer/internal/infrastructure/workerpool"
	"github.com/janhq/jan-summarizer/pkg/telemetry"
)

func newSummaryRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (summary.Repository, func(), error) {
	if !cfg.UsePostgres() {
		log.Info().Int("capacity", cfg.HistoryCapacity).Msg("summary history kept in memory")
		return summaryrepo.NewMemoryRepository(cfg.HistoryCapacity), func() {}, nil
	}

	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}

	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}
	return summaryrepo.NewSummaryGormRepository(db), cleanup, nil
}

func newRuntimeClient(cfg *config.Config, log zerolog.Logger) *resty.Client {
	return inference.NewRestyClient(inference.ClientConfig{
		BaseURL: cfg.InferenceBaseURL,
		APIKey:  cfg.InferenceAPIKey,
		Timeout: cfg.InferenceTimeout,
		Retries: cfg.InferenceRetries,
	}, log)
}

func newSummaryCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (summary.Cache, func(), error) {
	if !cfg.UseRedisCache() {
		return cache.New(cfg.CacheEnabled, cfg.CacheSize, cfg.CacheTTL), func() {}, nil
	}

	remote, err := cache.NewRedisCache(ctx, cfg.CacheRedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("summary cache shared through Redis")

	cleanup := func() {
		if err := remote.Close(); err != nil {
			log.Error().Err(err).Msg("close redis cache")
		}
	}
	local := cache.NewSummaryCache(cfg.CacheSize, cfg.CacheTTL)
	return cache.NewTieredCache(local, remote, cfg.CacheTTL, cfg.CacheRedisOp, log), cleanup, nil
}

// newModelManager wires the lifecycle so every transition purges cached
// results and refreshes the load gauge.
func newModelManager(loader *inference.Loader, cfg *config.Config, results summary.Cache, log zerolog.Logger) *model.Manager {
	manager := model.NewManager(loader, model.Settings{
		Dir:    cfg.ModelDir,
		Device: cfg.ModelDevice,
	}, log)
	manager.OnChange(func(status model.Status) {
		results.Purge()
		metrics.SetModelLoaded(status.Loaded)
	})
	return manager
}

func newGenerationPool(cfg *config.Config, log zerolog.Logger) (*workerpool.Pool, func()) {
	pool := workerpool.New(cfg.MaxConcurrentJobs, log)
	return pool, pool.Stop
}

func newSanitizer(cfg *config.Config) *telemetry.Sanitizer {
	return telemetry.NewSanitizer(telemetry.ParsePIILevel(cfg.PIILevel), cfg.ServiceName)
}

func newSummarySettings(cfg *config.Config) summary.Settings {
	return summary.Settings{
		DefaultMaxLength:   cfg.DefaultMaxLength,
		DefaultNumBeams:    cfg.DefaultNumBeams,
		InputPrefix:        cfg.InputPrefix,
		InputMaxTokens:     cfg.InputMaxTokens,
		NoRepeatNgramSize:  cfg.NoRepeatNgramSize,
		RepetitionPenalty:  cfg.RepetitionPenalty,
		LengthPenalty:      cfg.LengthPenalty,
		EarlyStopping:      cfg.EarlyStopping,
		MaxInputCharacters: cfg.MaxInputCharacters,
	}
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}
