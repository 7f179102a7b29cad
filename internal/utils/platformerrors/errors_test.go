package platformerrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeUnavailable, http.StatusServiceUnavailable},
		{ErrorTypeTimeout, http.StatusGatewayTimeout},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeToHTTPStatus(tt.errorType))
		})
	}
}

func TestAsErrorPreservesType(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	inner := NewError(ctx, LayerDomain, ErrorTypeUnavailable, "model not loaded", nil, "code-1")

	wrapped := AsError(ctx, LayerHandler, fmt.Errorf("summarize: %w", inner), "handler")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeUnavailable, wrapped.Type)
	assert.Equal(t, "code-1", wrapped.UUID)
	assert.Equal(t, "req-1", wrapped.RequestID)
	assert.True(t, IsErrorType(wrapped, ErrorTypeUnavailable))

	plain := AsError(ctx, LayerHandler, errors.New("boom"), "handler")
	assert.Equal(t, ErrorTypeInternal, plain.Type)
	assert.Nil(t, AsError(ctx, LayerHandler, nil, "nothing"))
}

func TestPublicMessage(t *testing.T) {
	typed := NewError(context.Background(), LayerDomain, ErrorTypeValidation, "Input text is empty", nil, "")
	assert.Equal(t, "Input text is empty", PublicMessage(fmt.Errorf("wrap: %w", typed)))
	assert.Equal(t, "raw failure", PublicMessage(errors.New("raw failure")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(typed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("raw failure")))
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := NewError(WithRequestID(context.Background(), "req-9"), LayerDomain, ErrorTypeUnavailable, "Model not loaded. Please reload the model.", nil, "0c9a")
	WriteError(c, err, zerolog.Nop())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unavailable_error", body.Error.Type)
	assert.Equal(t, "Model not loaded. Please reload the model.", body.Error.Message)
	assert.Equal(t, "req-9", body.Error.RequestID)
}
