package model

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrModelNotLoaded is returned by Acquire while no model is serving.
	ErrModelNotLoaded = errors.New("model not loaded")
	// ErrModelDirNotFound is returned by loaders when the weights directory is missing.
	ErrModelDirNotFound = errors.New("model directory not found")
)

// State is the lifecycle state of the process-wide model handle.
type State string

const (
	StateNotLoaded State = "not_loaded"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateFailed    State = "failed"
)

// EncodeOptions controls tokenization of input text.
type EncodeOptions struct {
	// MaxLength is only applied when Truncation is set.
	MaxLength  int
	Truncation bool
}

// GenerationParams are forwarded verbatim to the runtime's generate routine.
type GenerationParams struct {
	MaxNewTokens      int
	MinLength         int
	NumBeams          int
	NoRepeatNgramSize int
	RepetitionPenalty float64
	LengthPenalty     float64
	EarlyStopping     bool
}

// Model is the pretrained sequence-to-sequence capability.
type Model interface {
	Encode(ctx context.Context, text string, opts EncodeOptions) ([]int, error)
	Generate(ctx context.Context, inputIDs []int, params GenerationParams) ([]int, error)
	Decode(ctx context.Context, ids []int) (string, error)
}

// Info describes a loaded model as reported by the runtime.
type Info struct {
	Name      string
	ModelType string
	Device    string
	// Epoch changes on every lifecycle transition. Results produced under one
	// epoch must not be reused under another.
	Epoch uint64
}

// Handle is a loaded model that can be released.
type Handle interface {
	Model
	Info() Info
	Close(ctx context.Context) error
}

// LoadRequest identifies the weights to load and the device to place them on.
type LoadRequest struct {
	Dir    string
	Device string
}

// Loader opens model weights.
type Loader interface {
	Load(ctx context.Context, req LoadRequest) (Handle, error)
}

// Status is a point-in-time snapshot of the model handle.
type Status struct {
	State     State
	Loaded    bool
	Device    string
	ModelDir  string
	ModelName string
	ModelType string
	Error     string
	LoadedAt  *time.Time
}

// Lifecycle is the load/unload surface exposed to HTTP handlers.
type Lifecycle interface {
	Load(ctx context.Context) (Status, error)
	Unload(ctx context.Context) (Status, error)
	Status() Status
}

// Provider hands out the live model to request handlers.
type Provider interface {
	Acquire() (Model, Info, error)
	Status() Status
}
