package inference

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/infrastructure/metrics"
)

type loadRequest struct {
	ModelDir  string `json:"model_dir"`
	ModelType string `json:"model_type"`
	Device    string `json:"device"`
}

type loadResponse struct {
	ModelID string `json:"model_id"`
	Device  string `json:"device"`
}

type tokenizeRequest struct {
	Text       string `json:"text"`
	MaxLength  int    `json:"max_length,omitempty"`
	Truncation bool   `json:"truncation"`
}

type tokenizeResponse struct {
	InputIDs []int `json:"input_ids"`
}

type generateRequest struct {
	InputIDs          []int   `json:"input_ids"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	MinLength         int     `json:"min_length"`
	NumBeams          int     `json:"num_beams"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	LengthPenalty     float64 `json:"length_penalty"`
	EarlyStopping     bool    `json:"early_stopping"`
}

type generateResponse struct {
	Sequences [][]int `json:"sequences"`
}

type detokenizeRequest struct {
	IDs               []int `json:"ids"`
	SkipSpecialTokens bool  `json:"skip_special_tokens"`
}

type detokenizeResponse struct {
	Text string `json:"text"`
}

type runtimeError struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Loader loads seq2seq weights into the external model runtime.
type Loader struct {
	client *resty.Client
	log    zerolog.Logger
}

// NewLoader creates a loader backed by the runtime HTTP API.
func NewLoader(client *resty.Client, log zerolog.Logger) *Loader {
	return &Loader{
		client: client,
		log:    log.With().Str("component", "model-loader").Logger(),
	}
}

// Load validates the weights directory locally and asks the runtime to load it.
func (l *Loader) Load(ctx context.Context, req model.LoadRequest) (model.Handle, error) {
	info, err := os.Stat(req.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordModelLoad("missing_dir")
			return nil, fmt.Errorf("%w: %s", model.ErrModelDirNotFound, req.Dir)
		}
		metrics.RecordModelLoad("error")
		return nil, fmt.Errorf("stat model directory: %w", err)
	}
	if !info.IsDir() {
		metrics.RecordModelLoad("missing_dir")
		return nil, fmt.Errorf("%w: %s is not a directory", model.ErrModelDirNotFound, req.Dir)
	}

	cfg, err := ReadModelConfig(req.Dir)
	if err != nil {
		metrics.RecordModelLoad("error")
		return nil, err
	}
	if !cfg.IsSeq2Seq() {
		metrics.RecordModelLoad("error")
		return nil, fmt.Errorf("unsupported model type %q: a sequence-to-sequence model is required", cfg.ModelType)
	}

	absDir, err := filepath.Abs(req.Dir)
	if err != nil {
		metrics.RecordModelLoad("error")
		return nil, fmt.Errorf("resolve model directory: %w", err)
	}

	var loaded loadResponse
	if err := call(ctx, l.client.R(), "load", "/v1/models/load", loadRequest{
		ModelDir:  absDir,
		ModelType: cfg.ModelType,
		Device:    req.Device,
	}, &loaded); err != nil {
		metrics.RecordModelLoad("error")
		return nil, err
	}
	if loaded.ModelID == "" {
		metrics.RecordModelLoad("error")
		return nil, errors.New("model runtime returned an empty model id")
	}

	metrics.RecordModelLoad("success")
	cfg.LogFields(l.log.Info()).
		Str("model_id", loaded.ModelID).
		Str("device", loaded.Device).
		Str("model_type", cfg.ModelType).
		Msg("runtime accepted model")

	return &RuntimeModel{
		client:  l.client,
		modelID: loaded.ModelID,
		info: model.Info{
			Name:      filepath.Base(absDir),
			ModelType: cfg.ModelType,
			Device:    loaded.Device,
		},
	}, nil
}

// RuntimeModel is a model hosted by the external runtime.
type RuntimeModel struct {
	client  *resty.Client
	modelID string
	info    model.Info
}

// Info returns the model description reported at load time.
func (m *RuntimeModel) Info() model.Info {
	return m.info
}

// Encode tokenizes text. Special tokens are always appended by the runtime.
func (m *RuntimeModel) Encode(ctx context.Context, text string, opts model.EncodeOptions) ([]int, error) {
	body := tokenizeRequest{Text: text, Truncation: opts.Truncation}
	if opts.Truncation {
		body.MaxLength = opts.MaxLength
	}

	var resp tokenizeResponse
	if err := m.call(ctx, "tokenize", body, &resp); err != nil {
		return nil, err
	}
	return resp.InputIDs, nil
}

// Generate runs beam search and returns the best sequence.
func (m *RuntimeModel) Generate(ctx context.Context, inputIDs []int, params model.GenerationParams) ([]int, error) {
	var resp generateResponse
	if err := m.call(ctx, "generate", generateRequest{
		InputIDs:          inputIDs,
		MaxNewTokens:      params.MaxNewTokens,
		MinLength:         params.MinLength,
		NumBeams:          params.NumBeams,
		NoRepeatNgramSize: params.NoRepeatNgramSize,
		RepetitionPenalty: params.RepetitionPenalty,
		LengthPenalty:     params.LengthPenalty,
		EarlyStopping:     params.EarlyStopping,
	}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Sequences) == 0 {
		return nil, errors.New("model runtime returned no sequences")
	}
	return resp.Sequences[0], nil
}

// Decode turns ids back into text, skipping special tokens.
func (m *RuntimeModel) Decode(ctx context.Context, ids []int) (string, error) {
	var resp detokenizeResponse
	if err := m.call(ctx, "detokenize", detokenizeRequest{IDs: ids, SkipSpecialTokens: true}, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Close asks the runtime to release the model.
func (m *RuntimeModel) Close(ctx context.Context) error {
	return m.call(ctx, "unload", struct{}{}, nil)
}

func (m *RuntimeModel) call(ctx context.Context, op string, body, result any) error {
	req := m.client.R().SetPathParam("model_id", m.modelID)
	return call(ctx, req, op, "/v1/models/{model_id}/"+op, body, result)
}

func call(ctx context.Context, req *resty.Request, op, path string, body, result any) error {
	ctx, span := otel.Tracer("inference").Start(ctx, "runtime."+op)
	defer span.End()
	span.SetAttributes(attribute.String("runtime.op", op))

	start := time.Now()
	req = req.SetContext(ctx).SetBody(body).SetError(&runtimeError{})
	if result != nil {
		req = req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		metrics.RecordRuntimeCall(op, "transport_error", time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("model runtime %s: %w", op, err)
	}

	metrics.RecordRuntimeCall(op, fmt.Sprintf("%d", resp.StatusCode()), time.Since(start).Seconds())
	if resp.IsError() {
		err := errorFromResponse(op, resp)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func errorFromResponse(op string, resp *resty.Response) error {
	if rerr, ok := resp.Error().(*runtimeError); ok && rerr != nil {
		message := strings.TrimSpace(rerr.Error)
		if message == "" {
			message = strings.TrimSpace(rerr.Detail)
		}
		if message != "" {
			return errors.New(message)
		}
	}
	body := strings.TrimSpace(resp.String())
	if body == "" {
		body = resp.Status()
	}
	return fmt.Errorf("model runtime %s failed with status %d: %s", op, resp.StatusCode(), body)
}
