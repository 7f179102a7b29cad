package inference

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-summarizer/internal/domain/model"
)

func TestClientDoesNotRetryTimedOutGeneration(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(150 * time.Millisecond)
		writeJSON(w, http.StatusOK, generateResponse{Sequences: [][]int{{1}}})
	}))
	t.Cleanup(server.Close)

	client := NewRestyClient(ClientConfig{BaseURL: server.URL, Timeout: 50 * time.Millisecond, Retries: 2}, zerolog.Nop())
	m := &RuntimeModel{client: client, modelID: "m-1"}

	_, err := m.Generate(context.Background(), []int{1}, model.GenerationParams{NumBeams: 1})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryConditionOnlyCoversRefusedConnections(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: &os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED}}
	assert.True(t, retryOnConnectionRefused(nil, refused))
	assert.False(t, retryOnConnectionRefused(nil, context.DeadlineExceeded))
	assert.False(t, retryOnConnectionRefused(nil, errors.New("unexpected EOF")))
	assert.False(t, retryOnConnectionRefused(nil, nil))
}

func TestRestyLoggerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	l := restyLogger{log: zerolog.New(&buf)}

	l.Warnf("retrying %s\n", "generate")
	assert.JSONEq(t, `{"level":"warn","message":"retrying generate"}`, buf.String())
}

func TestModelConfigLogFields(t *testing.T) {
	dir := t.TempDir()
	cfg := `{"model_type":"t5","architectures":["T5ForConditionalGeneration"],"vocab_size":32128,"d_model":512,"num_layers":6,"num_decoder_layers":6}`
	require.NoError(t, os.WriteFile(dir+"/config.json", []byte(cfg), 0o644))

	mc, err := ReadModelConfig(dir)
	require.NoError(t, err)
	assert.True(t, mc.IsSeq2Seq())

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	mc.LogFields(log.Info()).Msg("loaded")
	assert.Contains(t, buf.String(), `"vocab_size":32128`)
	assert.Contains(t, buf.String(), `"decoder_layers":6`)
	assert.Contains(t, buf.String(), `"architectures":["T5ForConditionalGeneration"]`)
}
