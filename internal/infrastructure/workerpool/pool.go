package workerpool

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/infrastructure/metrics"
)

// ErrPoolStopped is returned when work is submitted after Stop.
var ErrPoolStopped = errors.New("generation pool stopped")

// Pool bounds the number of generations running against the model runtime.
type Pool struct {
	pool  pond.Pool
	instr *instrumenter
	log   zerolog.Logger
}

// New creates a pool that runs at most maxConcurrency tasks at once.
func New(maxConcurrency int, log zerolog.Logger) *Pool {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	p := &Pool{
		pool: pond.NewPool(maxConcurrency),
		log:  log.With().Str("component", "generation-pool").Logger(),
	}
	instr, err := newGlobalInstrumenter()
	if err != nil {
		p.log.Warn().Err(err).Msg("pool instrumentation disabled")
	} else {
		p.instr = instr
	}
	return p
}

// Execute runs fn on the pool and waits for it or for ctx to end.
// Queued tasks whose context has already ended are skipped.
func (p *Pool) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.pool.Stopped() {
		return ErrPoolStopped
	}

	task := p.pool.SubmitErr(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.report()
		if p.instr == nil {
			return fn(ctx)
		}
		return p.instr.run(ctx, fn)
	})
	p.report()

	select {
	case <-task.Done():
		p.report()
		return task.Wait()
	case <-ctx.Done():
		p.log.Debug().Err(ctx.Err()).Msg("caller gave up waiting for generation slot")
		return ctx.Err()
	}
}

// Stop waits for running and queued work to finish.
func (p *Pool) Stop() {
	p.pool.StopAndWait()
	p.report()
}

func (p *Pool) report() {
	metrics.SetPoolStats(p.pool.RunningWorkers(), p.pool.WaitingTasks())
}
