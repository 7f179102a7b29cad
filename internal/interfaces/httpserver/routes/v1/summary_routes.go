package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/handlers"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/requests"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver/responses"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

func registerSummaryRoutes(router gin.IRouter, handler *handlers.SummaryHandler, log zerolog.Logger) {
	router.POST("/summaries", createSummary(handler, log))
	router.GET("/summaries", listSummaries(handler, log))
	router.GET("/summaries/:id", getSummary(handler, log))
}

// createSummary godoc
// @Summary      Summarize text
// @Description  Generates a summary whose length adapts to the input. Identical requests may be served from cache.
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SummarizeRequest  true  "Text to summarize"
// @Success      200      {object}  responses.SummaryResponse
// @Failure      400      {object}  platformerrors.HTTPErrorResponse
// @Failure      503      {object}  platformerrors.HTTPErrorResponse
// @Failure      500      {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/summaries [post]
func createSummary(handler *handlers.SummaryHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid JSON body: "+err.Error())
			return
		}

		result, err := handler.Summarize(c.Request.Context(), req)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, responses.NewSummaryResponse(result))
	}
}

// listSummaries godoc
// @Summary      Recent summaries
// @Tags         summaries
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of summaries (1-100, default 20)"
// @Success      200    {object}  responses.SummaryListResponse
// @Failure      400    {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/summaries [get]
func listSummaries(handler *handlers.SummaryHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query requests.ListSummariesQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			platformerrors.WriteValidationError(c, "limit must be an integer")
			return
		}

		items, err := handler.List(c.Request.Context(), query)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, responses.NewSummaryListResponse(items))
	}
}

// getSummary godoc
// @Summary      Fetch one summary
// @Tags         summaries
// @Produce      json
// @Param        id   path      string  true  "Summary ID"
// @Success      200  {object}  responses.SummaryResponse
// @Failure      400  {object}  platformerrors.HTTPErrorResponse
// @Failure      404  {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/summaries/{id} [get]
func getSummary(handler *handlers.SummaryHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param requests.SummaryIDParam
		if err := c.ShouldBindUri(&param); err != nil {
			platformerrors.WriteValidationError(c, "invalid summary id")
			return
		}

		result, err := handler.Get(c.Request.Context(), param)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, responses.NewSummaryResponse(result))
	}
}
