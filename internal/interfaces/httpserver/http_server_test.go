package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-summarizer/internal/config"
	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

// MockSummaryService is a mock implementation of summary.Service for testing.
type MockSummaryService struct {
	SummarizeFunc  func(ctx context.Context, req summary.Request) (summary.Summary, error)
	GetFunc        func(ctx context.Context, id string) (summary.Summary, error)
	ListRecentFunc func(ctx context.Context, limit int) ([]summary.Summary, error)
}

func (m *MockSummaryService) Summarize(ctx context.Context, req summary.Request) (summary.Summary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, req)
	}
	return summary.Summary{}, nil
}

func (m *MockSummaryService) Get(ctx context.Context, id string) (summary.Summary, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return summary.Summary{}, nil
}

func (m *MockSummaryService) ListRecent(ctx context.Context, limit int) ([]summary.Summary, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

// MockLifecycle is a mock implementation of model.Lifecycle for testing.
type MockLifecycle struct {
	LoadFunc   func(ctx context.Context) (model.Status, error)
	UnloadFunc func(ctx context.Context) (model.Status, error)
	StatusFunc func() model.Status
}

func (m *MockLifecycle) Load(ctx context.Context) (model.Status, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return model.Status{}, nil
}

func (m *MockLifecycle) Unload(ctx context.Context) (model.Status, error) {
	if m.UnloadFunc != nil {
		return m.UnloadFunc(ctx)
	}
	return model.Status{State: model.StateNotLoaded}, nil
}

func (m *MockLifecycle) Status() model.Status {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return model.Status{State: model.StateNotLoaded, Device: "cpu", ModelDir: "t5_summarizer/"}
}

func loadedStatus() model.Status {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return model.Status{
		State:     model.StateLoaded,
		Loaded:    true,
		Device:    "cuda",
		ModelDir:  "t5_summarizer/",
		ModelName: "t5_summarizer",
		ModelType: "t5",
		LoadedAt:  &at,
	}
}

func setupTestServer(svc *MockSummaryService, lifecycle *MockLifecycle) http.Handler {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		ServiceName:     "summarizer-api",
		ServiceVersion:  "test",
		Environment:     "test",
		ShutdownTimeout: time.Second,
	}
	return httpserver.New(cfg, zerolog.Nop(), svc, lifecycle, nil).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestLegacyStatus(t *testing.T) {
	h := setupTestServer(&MockSummaryService{}, &MockLifecycle{})

	w := doJSON(t, h, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["model_loaded"])
	assert.Equal(t, "cpu", body["device"])
	assert.Nil(t, body["error"])
	assert.Equal(t, "t5_summarizer/", body["model_dir"])
}

func TestLegacySummarizeSuccess(t *testing.T) {
	var got summary.Request
	svc := &MockSummaryService{
		SummarizeFunc: func(ctx context.Context, req summary.Request) (summary.Summary, error) {
			got = req
			return summary.Summary{Text: "short", InputLength: 42, OutputLength: 5}, nil
		},
	}
	h := setupTestServer(svc, &MockLifecycle{})

	w := doJSON(t, h, http.MethodPost, "/api/summarize", `{"text":"some long text","max_length":"150","num_beams":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "short", body["summary"])
	assert.Equal(t, float64(42), body["input_length"])
	assert.Equal(t, float64(5), body["output_length"])
	assert.Equal(t, summary.Request{Text: "some long text", MaxLength: 150, NumBeams: 3}, got)
}

func TestLegacySummarizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "empty text",
			err:     platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, summary.MessageEmptyText, nil, ""),
			status:  http.StatusBadRequest,
			message: "Input text is empty",
		},
		{
			name:    "model not loaded",
			err:     platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeUnavailable, summary.MessageModelNotLoaded, model.ErrModelNotLoaded, ""),
			status:  http.StatusServiceUnavailable,
			message: "Model not loaded. Please reload the model.",
		},
		{
			name:    "runtime failure",
			err:     platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "CUDA out of memory", errors.New("CUDA out of memory"), ""),
			status:  http.StatusInternalServerError,
			message: "CUDA out of memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSummaryService{
				SummarizeFunc: func(ctx context.Context, req summary.Request) (summary.Summary, error) {
					return summary.Summary{}, tt.err
				},
			}
			h := setupTestServer(svc, &MockLifecycle{})

			w := doJSON(t, h, http.MethodPost, "/api/summarize", `{"text":"x"}`)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, map[string]any{"error": tt.message}, decode(t, w))
		})
	}
}

func TestLegacySummarizeMalformedJSON(t *testing.T) {
	h := setupTestServer(&MockSummaryService{}, &MockLifecycle{})

	w := doJSON(t, h, http.MethodPost, "/api/summarize", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "Invalid JSON body")
}

func TestLegacyLoadModelAlwaysOK(t *testing.T) {
	lifecycle := &MockLifecycle{
		LoadFunc: func(ctx context.Context) (model.Status, error) {
			return model.Status{
				State:    model.StateFailed,
				Device:   "cpu",
				ModelDir: "t5_summarizer/",
				Error:    "Model directory 't5_summarizer/' not found!",
			}, model.ErrModelDirNotFound
		},
	}
	h := setupTestServer(&MockSummaryService{}, lifecycle)

	w := doJSON(t, h, http.MethodPost, "/api/load-model", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["model_loaded"])
	assert.Equal(t, "Model directory 't5_summarizer/' not found!", body["error"])
}

func TestV1CreateSummary(t *testing.T) {
	svc := &MockSummaryService{
		SummarizeFunc: func(ctx context.Context, req summary.Request) (summary.Summary, error) {
			return summary.Summary{
				ID:           "0b1d5c0e-3f1a-4c8e-9a57-2d6e4f8a1b3c",
				Text:         "short",
				InputLength:  42,
				OutputLength: 5,
				InputTokens:  12,
				MaxLength:    130,
				NumBeams:     4,
				MaxNewTokens: 30,
				MinLength:    20,
				Duration:     250 * time.Millisecond,
				Cached:       true,
			}, nil
		},
	}
	h := setupTestServer(svc, &MockLifecycle{})

	w := doJSON(t, h, http.MethodPost, "/v1/summaries", `{"text":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "summary", body["object"])
	assert.Equal(t, float64(30), body["max_new_tokens"])
	assert.Equal(t, float64(250), body["duration_ms"])
	assert.Equal(t, true, body["cached"])
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestV1CreateSummaryStructuredError(t *testing.T) {
	svc := &MockSummaryService{
		SummarizeFunc: func(ctx context.Context, req summary.Request) (summary.Summary, error) {
			return summary.Summary{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnavailable, summary.MessageModelNotLoaded, nil, "code-1")
		},
	}
	h := setupTestServer(svc, &MockLifecycle{})

	w := doJSON(t, h, http.MethodPost, "/v1/summaries", `{"text":"hello"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp platformerrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, summary.MessageModelNotLoaded, resp.Error.Message)
	assert.Equal(t, "unavailable_error", resp.Error.Type)
	assert.Equal(t, "code-1", resp.Error.Code)
	assert.Equal(t, w.Header().Get("X-Request-Id"), resp.Error.RequestID)
}

func TestV1ListSummaries(t *testing.T) {
	var gotLimit int
	svc := &MockSummaryService{
		ListRecentFunc: func(ctx context.Context, limit int) ([]summary.Summary, error) {
			gotLimit = limit
			return []summary.Summary{{ID: "a"}, {ID: "b"}}, nil
		},
	}
	h := setupTestServer(svc, &MockLifecycle{})

	w := doJSON(t, h, http.MethodGet, "/v1/summaries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, float64(2), decode(t, w)["total"])

	w = doJSON(t, h, http.MethodGet, "/v1/summaries?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, gotLimit)

	w = doJSON(t, h, http.MethodGet, "/v1/summaries?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodGet, "/v1/summaries?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestV1GetSummary(t *testing.T) {
	const id = "0b1d5c0e-3f1a-4c8e-9a57-2d6e4f8a1b3c"
	svc := &MockSummaryService{
		GetFunc: func(ctx context.Context, got string) (summary.Summary, error) {
			if got == id {
				return summary.Summary{ID: id, Text: "short"}, nil
			}
			return summary.Summary{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "summary not found", summary.ErrNotFound, "")
		},
	}
	h := setupTestServer(svc, &MockLifecycle{})

	w := doJSON(t, h, http.MethodGet, "/v1/summaries/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "short", decode(t, w)["summary"])

	w = doJSON(t, h, http.MethodGet, "/v1/summaries/7c9e6679-7425-40de-944b-e07fc1f90ae7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodGet, "/v1/summaries/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestV1ModelLifecycle(t *testing.T) {
	lifecycle := &MockLifecycle{
		StatusFunc: loadedStatus,
		LoadFunc: func(ctx context.Context) (model.Status, error) {
			return loadedStatus(), nil
		},
	}
	h := setupTestServer(&MockSummaryService{}, lifecycle)

	w := doJSON(t, h, http.MethodGet, "/v1/model", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "loaded", body["state"])
	assert.Equal(t, "t5", body["model_type"])

	w = doJSON(t, h, http.MethodPost, "/v1/model/load", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/v1/model/unload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "not_loaded", decode(t, w)["state"])
}

func TestV1ModelLoadFailure(t *testing.T) {
	lifecycle := &MockLifecycle{
		LoadFunc: func(ctx context.Context) (model.Status, error) {
			return model.Status{State: model.StateFailed, Error: "Model directory 'x' not found!"}, model.ErrModelDirNotFound
		},
	}
	h := setupTestServer(&MockSummaryService{}, lifecycle)

	w := doJSON(t, h, http.MethodPost, "/v1/model/load", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp platformerrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Model directory 'x' not found!", resp.Error.Message)
}

func TestCoreRoutes(t *testing.T) {
	loaded := false
	lifecycle := &MockLifecycle{
		StatusFunc: func() model.Status {
			if loaded {
				return loadedStatus()
			}
			return model.Status{State: model.StateLoading}
		},
	}
	h := setupTestServer(&MockSummaryService{}, lifecycle)

	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, h, http.MethodGet, "/readyz", "").Code)

	loaded = true
	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/readyz", "").Code)

	w := doJSON(t, h, http.MethodGet, "/", "")
	body := decode(t, w)
	assert.Equal(t, "summarizer-api", body["service"])
	assert.Equal(t, true, body["model_loaded"])

	w = doJSON(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jan_summarizer_requests_total")
}
