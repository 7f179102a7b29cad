package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestUserAgentFamily(t *testing.T) {
	tests := map[string]string{
		"":                                   "unknown",
		"summarizer-cli/1.0 go-resty/2.11.0": "summarizer_cli",
		"Mozilla/5.0 (X11; Linux x86_64)":    "browser",
		"curl/8.4.0":                         "cli",
		"go-resty/2.11.0":                    "sdk",
		"something-else":                     "unknown",
	}
	for ua, want := range tests {
		assert.Equal(t, want, userAgentFamily(ua), ua)
	}
}

func TestSetModelLoaded(t *testing.T) {
	SetModelLoaded(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(ModelLoaded))
	SetModelLoaded(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(ModelLoaded))
}

func TestRecordSummaryCountsOutcomes(t *testing.T) {
	before := testutil.ToFloat64(SummariesTotal.WithLabelValues("cached"))
	RecordSummary("cached", 0, 0, 0)
	assert.Equal(t, before+1, testutil.ToFloat64(SummariesTotal.WithLabelValues("cached")))
}
