package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-summarizer/internal/config"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/inference"
	"github.com/janhq/jan-summarizer/internal/interfaces/httpserver"
	"github.com/janhq/jan-summarizer/pkg/client"
)

// fakeRuntime answers the model runtime API with one token per word.
func fakeRuntime(t *testing.T, generations *atomic.Int32) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, body any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models/load", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]string{"model_id": "m-1", "device": "cpu"})
	})
	mux.HandleFunc("/v1/models/m-1/tokenize", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		ids := make([]int, len(strings.Fields(req.Text))+1)
		reply(w, map[string][]int{"input_ids": ids})
	})
	mux.HandleFunc("/v1/models/m-1/generate", func(w http.ResponseWriter, r *http.Request) {
		generations.Add(1)
		reply(w, map[string][][]int{"sequences": {{0, 5, 6, 1}}})
	})
	mux.HandleFunc("/v1/models/m-1/detokenize", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]string{"text": "a tidy summary"})
	})
	mux.HandleFunc("/v1/models/m-1/unload", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]string{"status": "ok"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestApplicationEndToEnd(t *testing.T) {
	var generations atomic.Int32
	runtime := fakeRuntime(t, &generations)

	modelDir := filepath.Join(t.TempDir(), "t5_summarizer")
	require.NoError(t, os.MkdirAll(modelDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "config.json"), []byte(`{"model_type":"t5"}`), 0o644))

	t.Setenv("MODEL_DIR", modelDir)
	t.Setenv("INFERENCE_BASE_URL", runtime.URL)
	t.Setenv("INFERENCE_RETRIES", "0")
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()
	log := zerolog.Nop()

	repository, closeRepository, err := newSummaryRepository(ctx, cfg, log)
	require.NoError(t, err)
	defer closeRepository()
	authValidator, err := newAuthValidator(ctx, cfg, log)
	require.NoError(t, err)

	results, closeCache, err := newSummaryCache(ctx, cfg, log)
	require.NoError(t, err)
	defer closeCache()
	manager := newModelManager(inference.NewLoader(newRuntimeClient(cfg, log), log), cfg, results, log)
	pool, stopPool := newGenerationPool(cfg, log)
	defer stopPool()

	service := summary.NewService(newSummarySettings(cfg), manager, repository, results, pool, newSanitizer(cfg), log)
	server := httptest.NewServer(httpserver.New(cfg, log, service, manager, authValidator).Handler())
	defer server.Close()

	c := client.New(server.URL)

	_, err = c.Summarize(ctx, client.SummarizeRequest{Text: "before load"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	st, err := c.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.Loaded)
	assert.Equal(t, "cpu", st.Device)

	text := "The quick brown fox jumps over the lazy dog near the river bank."
	first, err := c.Summarize(ctx, client.SummarizeRequest{Text: text, MaxLength: 60})
	require.NoError(t, err)
	assert.Equal(t, "a tidy summary", first.Summary)
	assert.Equal(t, len(text), first.InputLength)
	assert.False(t, first.Cached)

	second, err := c.Summarize(ctx, client.SummarizeRequest{Text: text, MaxLength: 60})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, int32(1), generations.Load())

	history, err := c.History(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, history.Data)
	got, err := c.GetSummary(ctx, history.Data[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a tidy summary", got.Summary)

	st, err = c.Unload(ctx)
	require.NoError(t, err)
	assert.False(t, st.Loaded)
}
