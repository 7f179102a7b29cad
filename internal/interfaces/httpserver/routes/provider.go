package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/handlers"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/routes/legacy"
	v1 "github.com/janhq/jan-summarizer/internal/interfaces/httpserver/routes/v1"
)

// Provider aggregates route registrars.
type Provider struct {
	v1     *v1.Routes
	legacy *legacy.Routes
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider, log zerolog.Logger) *Provider {
	return &Provider{
		v1:     v1.NewRoutes(handlerProvider, log),
		legacy: legacy.NewRoutes(handlerProvider, log),
	}
}

// Register attaches every route group. middleware applies to the API groups only.
func (p *Provider) Register(router gin.IRouter, middleware ...gin.HandlerFunc) {
	p.legacy.Register(router, middleware...)
	p.v1.Register(router, middleware...)
}
