package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Summary *SummaryHandler
	Model   *ModelHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(summaryService summary.Service, lifecycle model.Lifecycle) *Provider {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return &Provider{
		Summary: NewSummaryHandler(summaryService, validate),
		Model:   NewModelHandler(lifecycle),
	}
}
