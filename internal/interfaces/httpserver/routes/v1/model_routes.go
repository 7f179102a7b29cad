package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/handlers"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/responses"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

func registerModelRoutes(router gin.IRouter, handler *handlers.ModelHandler, log zerolog.Logger) {
	router.GET("/model", getModel(handler))
	router.POST("/model/load", loadModel(handler, log))
	router.POST("/model/unload", unloadModel(handler, log))
}

// getModel godoc
// @Summary      Model status
// @Tags         model
// @Produce      json
// @Success      200  {object}  responses.ModelStatusResponse
// @Router       /v1/model [get]
func getModel(handler *handlers.ModelHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.NewModelStatusResponse(handler.Status()))
	}
}

// loadModel godoc
// @Summary      Load or reload the model
// @Description  A failed reload leaves no model serving.
// @Tags         model
// @Produce      json
// @Success      200  {object}  responses.ModelStatusResponse
// @Failure      503  {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/model/load [post]
func loadModel(handler *handlers.ModelHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status, err := handler.Load(ctx)
		if err != nil {
			platformerrors.WriteHTTPError(c, platformerrors.NewError(ctx, platformerrors.LayerRoute,
				platformerrors.ErrorTypeUnavailable, status.Error, err, "3b9d4f1e-2c7a-4e85-b6d0-8a1f5c3e9d27"), log)
			return
		}
		c.JSON(http.StatusOK, responses.NewModelStatusResponse(status))
	}
}

// unloadModel godoc
// @Summary      Unload the model
// @Tags         model
// @Produce      json
// @Success      200  {object}  responses.ModelStatusResponse
// @Failure      500  {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/model/unload [post]
func unloadModel(handler *handlers.ModelHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status, err := handler.Unload(ctx)
		if err != nil {
			platformerrors.WriteHTTPError(c, platformerrors.NewError(ctx, platformerrors.LayerRoute,
				platformerrors.ErrorTypeExternal, "model runtime failed to release the model", err, "f6a2c8e4-1d9b-4a73-8e05-7c4b2d9f1a38"), log)
			return
		}
		c.JSON(http.StatusOK, responses.NewModelStatusResponse(status))
	}
}
