package client

import (
	"fmt"
	"time"
)

// SummarizeRequest is the body of POST /v1/summaries.
type SummarizeRequest struct {
	Text      string `json:"text" yaml:"text" jsonschema:"required,minLength=1,description=Text to summarize"`
	MaxLength int    `json:"max_length,omitempty" yaml:"max_length,omitempty" jsonschema:"minimum=20,maximum=200,default=130,description=Upper bound on generated tokens; out-of-range values fall back to the default"`
	NumBeams  int    `json:"num_beams,omitempty" yaml:"num_beams,omitempty" jsonschema:"minimum=1,maximum=6,default=4,description=Beam width; out-of-range values fall back to the default"`
}

// Summary is a generated summary.
type Summary struct {
	ID           string    `json:"id" yaml:"id"`
	Summary      string    `json:"summary" yaml:"summary"`
	InputLength  int       `json:"input_length" yaml:"input_length"`
	OutputLength int       `json:"output_length" yaml:"output_length"`
	InputTokens  int       `json:"input_tokens" yaml:"input_tokens"`
	MaxLength    int       `json:"max_length" yaml:"max_length"`
	NumBeams     int       `json:"num_beams" yaml:"num_beams"`
	MaxNewTokens int       `json:"max_new_tokens" yaml:"max_new_tokens"`
	MinLength    int       `json:"min_length" yaml:"min_length"`
	Model        string    `json:"model,omitempty" yaml:"model,omitempty"`
	InputPreview string    `json:"input_preview,omitempty" yaml:"input_preview,omitempty"`
	DurationMs   int64     `json:"duration_ms" yaml:"duration_ms"`
	Cached       bool      `json:"cached" yaml:"cached"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// SummaryList is a page of history.
type SummaryList struct {
	Data  []Summary `json:"data" yaml:"data"`
	Total int       `json:"total" yaml:"total"`
}

// ModelStatus describes the server's model handle.
type ModelStatus struct {
	State     string     `json:"state" yaml:"state"`
	Loaded    bool       `json:"loaded" yaml:"loaded"`
	Device    string     `json:"device" yaml:"device"`
	ModelDir  string     `json:"model_dir" yaml:"model_dir"`
	ModelName string     `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	ModelType string     `json:"model_type,omitempty" yaml:"model_type,omitempty"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty" yaml:"loaded_at,omitempty"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       string `json:"code,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s (status %d, request %s)", e.Message, e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}
