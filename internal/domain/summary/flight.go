package summary

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type flightCall struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// flightGroup coalesces concurrent calls per key. The shared call runs on a
// context detached from any single caller and cancelled once every caller
// has left.
type flightGroup struct {
	mu    sync.Mutex
	group singleflight.Group
	calls map[string]*flightCall
}

// Do runs fn once for all concurrent callers of key. A caller whose ctx ends
// returns ctx.Err() without waiting for the shared result.
func (g *flightGroup) Do(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, bool, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flightCall)
	}
	call, ok := g.calls[key]
	if !ok {
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		call = &flightCall{ctx: callCtx, cancel: cancel}
		g.calls[key] = call
	}
	call.waiters++
	ch := g.group.DoChan(key, func() (any, error) {
		return fn(call.ctx)
	})
	g.mu.Unlock()

	select {
	case res := <-ch:
		g.leave(key, call)
		return res.Val, res.Shared, res.Err
	case <-ctx.Done():
		g.leave(key, call)
		return nil, false, ctx.Err()
	}
}

func (g *flightGroup) leave(key string, call *flightCall) {
	g.mu.Lock()
	defer g.mu.Unlock()

	call.waiters--
	if call.waiters > 0 {
		return
	}
	call.cancel()
	if g.calls[key] == call {
		delete(g.calls, key)
		// A later caller must start a fresh call, not join the cancelled one.
		g.group.Forget(key)
	}
}
