package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

func TestSummaryCacheAddGet(t *testing.T) {
	c := NewSummaryCache(2, time.Minute)

	c.Add("a", summary.Summary{ID: "1", Text: "first"})
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", got.Text)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestSummaryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSummaryCache(2, time.Minute)
	c.Add("a", summary.Summary{ID: "1"})
	c.Add("b", summary.Summary{ID: "2"})
	_, _ = c.Get("a")
	c.Add("c", summary.Summary{ID: "3"})

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestSummaryCacheExpires(t *testing.T) {
	c := NewSummaryCache(4, 20*time.Millisecond)
	c.Add("a", summary.Summary{ID: "1"})

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestSummaryCachePurge(t *testing.T) {
	c := NewSummaryCache(4, time.Minute)
	c.Add("a", summary.Summary{ID: "1"})
	c.Purge()

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestNewDisabledReturnsNoop(t *testing.T) {
	c := New(false, 10, time.Minute)
	c.Add("a", summary.Summary{ID: "1"})

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.IsType(t, NoopCache{}, c)
}
