package summaryrepo

import (
	"context"
	"sync"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

// MemoryRepository keeps the most recent summaries in a fixed-size ring.
type MemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	items    []summary.Summary
	next     int
	byID     map[string]int
}

var _ summary.Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a ring holding at most capacity summaries.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryRepository{
		capacity: capacity,
		items:    make([]summary.Summary, 0, capacity),
		byID:     make(map[string]int, capacity),
	}
}

func (r *MemoryRepository) Save(_ context.Context, s summary.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) < r.capacity {
		r.byID[s.ID] = len(r.items)
		r.items = append(r.items, s)
		return nil
	}

	delete(r.byID, r.items[r.next].ID)
	r.items[r.next] = s
	r.byID[s.ID] = r.next
	r.next = (r.next + 1) % r.capacity
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (summary.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return summary.Summary{}, summary.ErrNotFound
	}
	return r.items[idx], nil
}

// ListRecent returns up to limit summaries, newest first.
func (r *MemoryRepository) ListRecent(_ context.Context, limit int) ([]summary.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.items)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]summary.Summary, 0, limit)
	// newest entry sits just before next once the ring is full
	newest := n - 1
	if n == r.capacity {
		newest = (r.next - 1 + r.capacity) % r.capacity
	}
	for i := 0; i < limit; i++ {
		out = append(out, r.items[(newest-i+n)%n])
	}
	return out, nil
}
