package job

import (
	"context"
	"fmt"

	"github.com/mmuldo/lutter/interp"
	"github.com/mmuldo/lutter/lut"
)

type transformFunc func(r, g, b uint8, grid *lut.Grid) (uint8, uint8, uint8)

// Run applies grid to every pixel of an interleaved RGBA buffer in place and
// reports on out, tagging every event with token.
//
// Progress is measured in pixels. An event is considered once every
// max(P/100, 1) pixels and after the last pixel, and is only sent when the
// whole percentage grew, so percentages strictly increase and end at 100. The
// job then sends exactly one Completed or Failed event.
//
// Cancelling ctx stops the loop at the next progress boundary; a cancelled job
// sends nothing more. Run returns once it no longer touches pixels.
func Run(ctx context.Context, token Token, pixels []uint8, grid *lut.Grid, out chan<- Event) {
	run(ctx, token, pixels, grid, out, interp.TransformPixel)
}

func run(ctx context.Context, token Token, pixels []uint8, grid *lut.Grid, out chan<- Event, transform transformFunc) {
	ev, ok := process(ctx, token, pixels, grid, out, transform)
	if !ok || ctx.Err() != nil {
		return
	}
	send(ctx, out, ev)
}

// process returns the terminal event of the job, or false if it was cancelled.
func process(ctx context.Context, token Token, pixels []uint8, grid *lut.Grid, out chan<- Event, transform transformFunc) (ev Event, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			ev, ok = Event{Token: token, Kind: Failed, Err: fault(p)}, true
		}
	}()

	if len(pixels)%4 != 0 {
		return Event{Token: token, Kind: Failed, Err: fmt.Errorf("%w: %d bytes", ErrBufferSize, len(pixels))}, true
	}

	total := len(pixels) / 4
	interval := max(total/100, 1)
	last := 0

	for i := 0; i < total; i++ {
		o := i * 4
		pixels[o], pixels[o+1], pixels[o+2] = transform(pixels[o], pixels[o+1], pixels[o+2], grid)

		done := i + 1
		if done%interval != 0 && done != total {
			continue
		}
		if ctx.Err() != nil {
			return Event{}, false
		}
		if p := done * 100 / total; p > last {
			last = p
			if !send(ctx, out, Event{Token: token, Kind: Progress, Percent: p}) {
				return Event{}, false
			}
		}
	}

	return Event{Token: token, Kind: Completed, Pixels: pixels}, true
}

func send(ctx context.Context, out chan<- Event, ev Event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// fault converts a recovered panic into a job error.
func fault(p interface{}) error {
	switch v := p.(type) {
	case *lut.OutOfRangeError:
		return fmt.Errorf("%w: %w", ErrOutOfRange, v)
	case error:
		return fmt.Errorf("%w: %w", ErrUnexpected, v)
	default:
		return fmt.Errorf("%w: %v", ErrUnexpected, v)
	}
}
