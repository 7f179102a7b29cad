package legacy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/handlers"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/requests"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/responses"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

// getStatus godoc
// @Summary      Model status
// @Description  Reports whether the model is loaded, the device and the last load error.
// @Tags         api
// @Produce      json
// @Success      200  {object}  responses.LegacyStatusResponse
// @Router       /api/status [get]
func getStatus(handler *handlers.ModelHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.NewLegacyStatusResponse(handler.Status()))
	}
}

// postSummarize godoc
// @Summary      Summarize text
// @Description  Out-of-range max_length (20-200) or num_beams (1-6) fall back to 130 and 4.
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SummarizeRequest  true  "Text to summarize"
// @Success      200      {object}  responses.LegacySummarizeResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      503      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /api/summarize [post]
func postSummarize(handler *handlers.SummaryHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Invalid JSON body: " + err.Error()})
			return
		}

		result, err := handler.Summarize(c.Request.Context(), req)
		if err != nil {
			if platformErr := platformerrors.GetPlatformError(err); platformErr != nil {
				platformerrors.LogError(log, platformErr)
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(platformerrors.HTTPStatus(err), responses.ErrorResponse{Error: platformerrors.PublicMessage(err)})
			return
		}
		c.JSON(http.StatusOK, responses.NewLegacySummarizeResponse(result))
	}
}

// postLoadModel godoc
// @Summary      Reload the model
// @Description  Always answers 200; success and error describe the load outcome.
// @Tags         api
// @Produce      json
// @Success      200  {object}  responses.LegacyLoadResponse
// @Router       /api/load-model [post]
func postLoadModel(handler *handlers.ModelHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, _ := handler.Load(c.Request.Context())
		c.JSON(http.StatusOK, responses.NewLegacyLoadResponse(status))
	}
}
