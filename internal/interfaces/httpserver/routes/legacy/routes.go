// Package legacy serves the original /api surface with flat {"error": "..."} bodies.
package legacy

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates /api route registration.
type Routes struct {
	handlers *handlers.Provider
	log      zerolog.Logger
}

// NewRoutes builds the /api route registrar.
func NewRoutes(handlerProvider *handlers.Provider, log zerolog.Logger) *Routes {
	return &Routes{
		handlers: handlerProvider,
		log:      log,
	}
}

// Register attaches all routes under the /api prefix.
func (r *Routes) Register(router gin.IRouter, middleware ...gin.HandlerFunc) {
	group := router.Group("/api", middleware...)
	group.GET("/status", getStatus(r.handlers.Model))
	group.POST("/summarize", postSummarize(r.handlers.Summary, r.log))
	group.POST("/load-model", postLoadModel(r.handlers.Model))
}
