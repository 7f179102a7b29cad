package dbschema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

func TestSummaryConversionKeepsHistoryFields(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := summary.Summary{
		ID:           "b1f1",
		Text:         "short",
		InputLength:  400,
		OutputLength: 5,
		InputTokens:  90,
		MaxLength:    130,
		NumBeams:     4,
		MaxNewTokens: 40,
		MinLength:    20,
		ModelName:    "t5_summarizer",
		InputHash:    "abc",
		InputPreview: "preview",
		Duration:     1500 * time.Millisecond,
		Cached:       true,
		CreatedAt:    created,
	}

	row := NewSchemaSummary(in)
	assert.Equal(t, int64(1500), row.DurationMs)
	assert.Equal(t, "b1f1", row.PublicID)

	out := row.EtoD()
	in.Cached = false
	assert.Equal(t, in, out)
}
