package responses

import (
	"time"

	"github.com/janhq/jan-summarizer/internal/domain/model"
	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

// ErrorResponse is the flat error body of the /api routes.
type ErrorResponse struct {
	Error string `json:"error" example:"Input text is empty"`
}

// LegacyStatusResponse is returned by GET /api/status.
type LegacyStatusResponse struct {
	ModelLoaded bool    `json:"model_loaded" example:"true"`
	Device      string  `json:"device" example:"cuda"`
	Error       *string `json:"error"`
	ModelDir    string  `json:"model_dir" example:"t5_summarizer/"`
	State       string  `json:"state" example:"loaded"`
}

// LegacySummarizeResponse is returned by POST /api/summarize.
type LegacySummarizeResponse struct {
	Success      bool   `json:"success" example:"true"`
	Summary      string `json:"summary" example:"The deploy failed and Bob is rolling back."`
	InputLength  int    `json:"input_length" example:"412"`
	OutputLength int    `json:"output_length" example:"43"`
}

// LegacyLoadResponse is returned by POST /api/load-model.
type LegacyLoadResponse struct {
	Success     bool    `json:"success" example:"true"`
	ModelLoaded bool    `json:"model_loaded" example:"true"`
	Device      string  `json:"device" example:"cuda"`
	Error       *string `json:"error"`
}

// ModelStatusResponse is the /v1 view of the model handle.
type ModelStatusResponse struct {
	Object    string     `json:"object" example:"model.status"`
	State     string     `json:"state" example:"loaded"`
	Loaded    bool       `json:"loaded" example:"true"`
	Device    string     `json:"device" example:"cuda"`
	ModelDir  string     `json:"model_dir" example:"t5_summarizer/"`
	ModelName string     `json:"model_name,omitempty" example:"t5_summarizer"`
	ModelType string     `json:"model_type,omitempty" example:"t5"`
	Error     string     `json:"error,omitempty"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
}

// SummaryResponse is the /v1 view of a summary.
type SummaryResponse struct {
	ID           string    `json:"id" example:"5f0c6a55-9a4b-4f53-9f0e-3b8f0c1c2d7e"`
	Object       string    `json:"object" example:"summary"`
	Summary      string    `json:"summary" example:"The deploy failed and Bob is rolling back."`
	InputLength  int       `json:"input_length" example:"412"`
	OutputLength int       `json:"output_length" example:"43"`
	InputTokens  int       `json:"input_tokens" example:"96"`
	MaxLength    int       `json:"max_length" example:"130"`
	NumBeams     int       `json:"num_beams" example:"4"`
	MaxNewTokens int       `json:"max_new_tokens" example:"40"`
	MinLength    int       `json:"min_length" example:"20"`
	Model        string    `json:"model,omitempty" example:"t5_summarizer"`
	InputPreview string    `json:"input_preview,omitempty"`
	DurationMs   int64     `json:"duration_ms" example:"842"`
	Cached       bool      `json:"cached" example:"false"`
	CreatedAt    time.Time `json:"created_at"`
}

// SummaryListResponse wraps a page of history.
type SummaryListResponse struct {
	Object string            `json:"object" example:"list"`
	Data   []SummaryResponse `json:"data"`
	Total  int               `json:"total" example:"2"`
}

// NewModelStatusResponse maps a model status snapshot.
func NewModelStatusResponse(s model.Status) ModelStatusResponse {
	return ModelStatusResponse{
		Object:    "model.status",
		State:     string(s.State),
		Loaded:    s.Loaded,
		Device:    s.Device,
		ModelDir:  s.ModelDir,
		ModelName: s.ModelName,
		ModelType: s.ModelType,
		Error:     s.Error,
		LoadedAt:  s.LoadedAt,
	}
}

// NewLegacyStatusResponse maps a status snapshot to the original status body.
func NewLegacyStatusResponse(s model.Status) LegacyStatusResponse {
	return LegacyStatusResponse{
		ModelLoaded: s.Loaded,
		Device:      s.Device,
		Error:       nullable(s.Error),
		ModelDir:    s.ModelDir,
		State:       string(s.State),
	}
}

// NewLegacyLoadResponse maps a load outcome to the original load body.
func NewLegacyLoadResponse(s model.Status) LegacyLoadResponse {
	return LegacyLoadResponse{
		Success:     s.Loaded,
		ModelLoaded: s.Loaded,
		Device:      s.Device,
		Error:       nullable(s.Error),
	}
}

// NewLegacySummarizeResponse maps a summary to the original summarize body.
func NewLegacySummarizeResponse(s summary.Summary) LegacySummarizeResponse {
	return LegacySummarizeResponse{
		Success:      true,
		Summary:      s.Text,
		InputLength:  s.InputLength,
		OutputLength: s.OutputLength,
	}
}

// NewSummaryResponse maps a domain summary.
func NewSummaryResponse(s summary.Summary) SummaryResponse {
	return SummaryResponse{
		ID:           s.ID,
		Object:       "summary",
		Summary:      s.Text,
		InputLength:  s.InputLength,
		OutputLength: s.OutputLength,
		InputTokens:  s.InputTokens,
		MaxLength:    s.MaxLength,
		NumBeams:     s.NumBeams,
		MaxNewTokens: s.MaxNewTokens,
		MinLength:    s.MinLength,
		Model:        s.ModelName,
		InputPreview: s.InputPreview,
		DurationMs:   s.Duration.Milliseconds(),
		Cached:       s.Cached,
		CreatedAt:    s.CreatedAt,
	}
}

// NewSummaryListResponse maps a slice of summaries.
func NewSummaryListResponse(items []summary.Summary) SummaryListResponse {
	data := make([]SummaryResponse, len(items))
	for i, s := range items {
		data[i] = NewSummaryResponse(s)
	}
	return SummaryListResponse{Object: "list", Data: data, Total: len(data)}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
