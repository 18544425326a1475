package grass

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Regenerator runs whole Generate calls off the render thread and publishes
// each finished mesh with a single pointer swap, so a reader only ever sees
// a complete field. A newer request supersedes any request still running;
// the superseded result is dropped.
type Regenerator struct {
	log     *zap.Logger
	current atomic.Pointer[Mesh]
	updates chan *Mesh

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	err    error
	wg     sync.WaitGroup
}

// NewRegenerator creates an idle regenerator.
func NewRegenerator(log *zap.Logger) *Regenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Regenerator{
		log:     log,
		updates: make(chan *Mesh, 1),
	}
}

// Request schedules a generation. Options must carry their own random
// source; a source shared with another request would be used concurrently.
func (r *Regenerator) Request(ctx context.Context, params Params, opts ...Option) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		// A request superseded before it starts, or while running, stops
		// without finishing the field.
		if ctx.Err() != nil {
			return
		}
		opts = append([]Option{WithLogger(r.log)}, opts...)
		mesh, err := Generate(params, append(opts, WithContext(ctx))...)
		if ctx.Err() != nil {
			return
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if seq != r.seq {
			return
		}
		if err != nil {
			r.err = err
			r.log.Warn("field regeneration failed", zap.Error(err))
			return
		}
		r.err = nil
		r.current.Store(mesh)

		// Keep only the newest mesh in the notification slot.
		select {
		case <-r.updates:
		default:
		}
		r.updates <- mesh
	}()
}

// Current returns the latest complete mesh, or nil before the first
// successful generation.
func (r *Regenerator) Current() *Mesh {
	return r.current.Load()
}

// Updates delivers each newly published mesh. Unread meshes are replaced
// by newer ones.
func (r *Regenerator) Updates() <-chan *Mesh {
	return r.updates
}

// Err returns the error of the latest finished request, if any.
func (r *Regenerator) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Wait blocks until every scheduled request has finished or been dropped.
func (r *Regenerator) Wait() {
	r.wg.Wait()
}

// Close cancels the pending request and waits for workers to exit.
func (r *Regenerator) Close() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.Wait()
}
