//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/janhq/jan-summarizer/internal/config"
	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/inference"
	"github.com/janhq/jan-summarizer/internal/infrastructure/logger"
	"github.com/janhq/jan-summarizer/internal/infrastructure/workerpool"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver"
	"github.com/janhq/jan-summarizer/pkg/telemetry"
)

var modelSet = wire.NewSet(
	newRuntimeClient,
	inference.NewLoader,
	newModelManager,
	wire.Bind(new(model.Lifecycle), new(*model.Manager)),
	wire.Bind(new(model.Provider), new(*model.Manager)),
)

var summarySet = wire.NewSet(
	newSummarySettings,
	newSummaryRepository,
	newSummaryCache,
	newGenerationPool,
	newSanitizer,
	wire.Bind(new(summary.Executor), new(*workerpool.Pool)),
	wire.Bind(new(summary.Redactor), new(*telemetry.Sanitizer)),
	summary.NewService,
)

// BuildApplication assembles the service with Wire; it mirrors the manual wiring in main.
func BuildApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		newAuthValidator,
		modelSet,
		summarySet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}
