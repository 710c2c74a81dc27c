package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mmuldo/lutter/lut"
)

// Serve runs a Dispatcher behind the CBOR worker protocol, reading requests
// from r and writing responses to w. Tokens are assigned in request order,
// starting at 1.
//
// A start request whose LUT fails to build supersedes the job in flight and is
// answered at once with an error response; no job starts. Serve returns after
// r is exhausted and the last job has terminated.
func Serve(ctx context.Context, r io.Reader, w io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	d := NewDispatcher(logger)
	defer d.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	enc := NewEncoder(w)
	write := func(resp Response) error {
		mu.Lock()
		defer mu.Unlock()
		return enc.Encode(resp)
	}

	var eof atomic.Bool
	werr := make(chan error, 1)
	go func() {
		for {
			ev, e := d.Next(ctx)
			if e != nil {
				werr <- nil
				return
			}
			if e := write(NewResponse(ev)); e != nil {
				cancel()
				werr <- fmt.Errorf("writing response: %w", e)
				return
			}
			if ev.Terminal() && eof.Load() {
				werr <- nil
				return
			}
		}
	}()

	dec := NewDecoder(r)
	for {
		var req Request
		if e := dec.Decode(&req); e != nil {
			if errors.Is(e, io.EOF) {
				break
			}
			cancel()
			<-werr
			return fmt.Errorf("decoding request: %w", e)
		}

		switch req.Type {
		case TypeStart:
			grid, e := lut.Build(req.LUTEdgeLength, req.LUTSamples)
			if e != nil {
				token := d.Cancel()
				logger.Warn("rejecting job", "token", token, "error", e)
				if e := write(Response{Type: TypeError, Token: token, Message: e.Error()}); e != nil {
					cancel()
					<-werr
					return fmt.Errorf("writing response: %w", e)
				}
				continue
			}
			if _, e := d.Start(req.PixelBuffer, grid); e != nil {
				return e
			}
		case TypeCancel:
			d.Cancel()
		default:
			logger.Warn("ignoring request", "type", req.Type)
		}
	}

	eof.Store(true)
	if state, _ := d.State(); state != StateRunning {
		cancel()
	}
	return <-werr
}
