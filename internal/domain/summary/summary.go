package summary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories for unknown summary ids.
var ErrNotFound = errors.New("summary not found")

// Request is a summarization request. Zero MaxLength or NumBeams select defaults.
type Request struct {
	Text      string
	MaxLength int
	NumBeams  int
}

// Summary is a generated summary together with the parameters that produced it.
type Summary struct {
	ID           string
	Text         string
	InputLength  int
	OutputLength int
	InputTokens  int
	MaxLength    int
	NumBeams     int
	MaxNewTokens int
	MinLength    int
	ModelName    string
	InputHash    string
	InputPreview string
	Duration     time.Duration
	Cached       bool
	CreatedAt    time.Time
}

// Repository stores generated summaries.
type Repository interface {
	Save(ctx context.Context, s Summary) error
	Get(ctx context.Context, id string) (Summary, error)
	ListRecent(ctx context.Context, limit int) ([]Summary, error)
}

// Cache holds recent results keyed by input and parameters.
type Cache interface {
	Get(key string) (Summary, bool)
	Add(key string, s Summary)
	Purge()
}

// Executor bounds how many generations run at once.
type Executor interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// Redactor scrubs user text before it reaches logs or storage previews.
type Redactor interface {
	SanitizeText(input string) string
}
