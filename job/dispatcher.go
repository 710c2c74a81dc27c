package job

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmuldo/lutter/interp"
	"github.com/mmuldo/lutter/lut"
)

const eventBuffer = 64

// Dispatcher is the issuing side of the job protocol. It runs at most one job
// at a time on its own goroutine and hands the issuer only the events of the
// job it currently tracks.
//
// Start passes ownership of the pixel buffer to the job. The buffer comes back
// in the Completed event; after a Failed event or a supersession its contents
// are indeterminate and should be discarded.
type Dispatcher struct {
	logger    *slog.Logger
	transform transformFunc
	events    chan Event
	closing   chan struct{}

	mu     sync.Mutex
	token  Token
	state  State
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// NewDispatcher returns an idle Dispatcher. A nil logger uses slog.Default().
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger:    logger,
		transform: interp.TransformPixel,
		events:    make(chan Event, eventBuffer),
		closing:   make(chan struct{}),
	}
}

// Start supersedes any job in flight and starts a new one applying grid to
// pixels. It returns once the superseded job has stopped touching its buffer.
func (d *Dispatcher) Start(pixels []uint8, grid *lut.Grid) (Token, error) {
	if grid == nil {
		return 0, ErrNoGrid
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, ErrClosed
	}
	d.supersede()

	d.token++
	token := d.token
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	transform := d.transform
	d.cancel, d.done, d.state = cancel, done, StateRunning

	d.logger.Debug("starting job", "token", token, "pixels", len(pixels)/4, "edge_length", grid.EdgeLength())

	go func() {
		defer close(done)
		run(ctx, token, pixels, grid, d.events, transform)
	}()

	return token, nil
}

// Cancel supersedes the job in flight, if any, without starting another. The
// returned token names no job; events of every earlier token are discarded.
func (d *Dispatcher) Cancel() Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.supersede()
	d.token++
	d.state = StateCancelled
	return d.token
}

// Next blocks until the tracked job emits an event. Events of superseded jobs
// are dropped.
func (d *Dispatcher) Next(ctx context.Context) (Event, error) {
	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-d.closing:
			return Event{}, ErrClosed
		case ev := <-d.events:
			if d.accept(ev) {
				return ev, nil
			}
			d.logger.Debug("dropping stale event", "token", ev.Token, "kind", ev.Kind)
		}
	}
}

// Await consumes events of the tracked job until it terminates, calling
// progress for each Progress event. It returns the transformed buffer or the
// job's error.
func (d *Dispatcher) Await(ctx context.Context, progress func(percent int)) ([]uint8, error) {
	for {
		ev, e := d.Next(ctx)
		if e != nil {
			return nil, e
		}

		switch ev.Kind {
		case Progress:
			if progress != nil {
				progress(ev.Percent)
			}
		case Completed:
			return ev.Pixels, nil
		case Failed:
			return nil, ev.Err
		}
	}
}

// State returns the state and token of the tracked job.
func (d *Dispatcher) State() (State, Token) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state, d.token
}

// Close stops the job in flight. Blocked and later calls to Next return ErrClosed.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.supersede()
	close(d.closing)
}

func (d *Dispatcher) accept(ev Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ev.Token != d.token || d.state != StateRunning {
		return false
	}

	switch ev.Kind {
	case Completed:
		d.state = StateCompleted
	case Failed:
		d.state = StateFailed
		d.logger.Warn("job failed", "token", ev.Token, "error", ev.Err)
	}
	return true
}

// supersede cancels the tracked job and waits for its goroutine. d.mu must be held.
func (d *Dispatcher) supersede() {
	if d.cancel == nil {
		return
	}

	d.cancel()
	<-d.done
	if d.state == StateRunning {
		d.state = StateCancelled
		d.logger.Info("superseded job", "token", d.token)
	}
	d.cancel, d.done = nil, nil
}
