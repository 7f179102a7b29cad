package handlers

import (
	"context"

	"github.com/janhq/jan-summarizer/internal/domain/model"
)

// ModelHandler exposes the model lifecycle to routes.
type ModelHandler struct {
	lifecycle model.Lifecycle
}

// NewModelHandler wires dependencies for model routes.
func NewModelHandler(lifecycle model.Lifecycle) *ModelHandler {
	return &ModelHandler{lifecycle: lifecycle}
}

// Status returns the current model status.
func (h *ModelHandler) Status() model.Status {
	return h.lifecycle.Status()
}

// Load (re)loads the model. The returned status is meaningful even when err is set.
func (h *ModelHandler) Load(ctx context.Context) (model.Status, error) {
	return h.lifecycle.Load(ctx)
}

// Unload releases the model.
func (h *ModelHandler) Unload(ctx context.Context) (model.Status, error) {
	return h.lifecycle.Unload(ctx)
}
