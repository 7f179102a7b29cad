package handlers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/metrics"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/requests"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

const defaultListLimit = 20

// SummaryHandler invokes domain logic for summarization use cases.
type SummaryHandler struct {
	service  summary.Service
	validate *validator.Validate
}

// NewSummaryHandler wires dependencies for summary routes.
func NewSummaryHandler(service summary.Service, validate *validator.Validate) *SummaryHandler {
	return &SummaryHandler{
		service:  service,
		validate: validate,
	}
}

// Summarize runs the summarization use case and records its outcome.
func (h *SummaryHandler) Summarize(ctx context.Context, req requests.SummarizeRequest) (summary.Summary, error) {
	result, err := h.service.Summarize(ctx, req.ToDomain())
	if err != nil {
		metrics.RecordSummary("error", 0, 0, 0)
		return summary.Summary{}, err
	}

	outcome := "generated"
	if result.Cached {
		outcome = "cached"
	}
	metrics.RecordSummary(outcome, result.InputTokens, result.OutputLength, result.Duration.Seconds())
	return result, nil
}

// Get returns one summary from history.
func (h *SummaryHandler) Get(ctx context.Context, param requests.SummaryIDParam) (summary.Summary, error) {
	if err := h.validate.Struct(param); err != nil {
		return summary.Summary{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"summary id must be a UUID", err, "c4a9e2d1-7b3f-4e08-9a56-1d2e3f4a5b6c")
	}
	return h.service.Get(ctx, param.ID)
}

// List returns recent summaries, newest first.
func (h *SummaryHandler) List(ctx context.Context, query requests.ListSummariesQuery) ([]summary.Summary, error) {
	if err := h.validate.Struct(query); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("limit must be between 1 and 100, got %d", query.Limit), err, "8d7c6b5a-4e3f-4d2c-b1a0-9f8e7d6c5b4a")
	}
	limit := query.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	return h.service.ListRecent(ctx, limit)
}
