package job

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange means a grid lookup escaped the cube during a job.
	ErrOutOfRange = errors.New("grid lookup out of range")

	// ErrUnexpected wraps any other fault raised while processing pixels.
	ErrUnexpected = errors.New("failed to apply LUT")

	// ErrBufferSize is returned for pixel buffers whose length is not a multiple of 4.
	ErrBufferSize = errors.New("pixel buffer length is not a multiple of 4")

	// ErrNoGrid is returned by Start when it is given a nil grid.
	ErrNoGrid = errors.New("no LUT grid")

	// ErrClosed is returned by Next after Close.
	ErrClosed = errors.New("dispatcher closed")
)

// Token identifies one job. Tokens increase by one for every job a Dispatcher
// starts or supersedes; the zero token never names a job.
type Token uint64

// Kind tells which variant an Event carries.
type Kind uint8

const (
	Progress Kind = iota + 1
	Completed
	Failed
)

func (k Kind) String() string {
	switch k {
	case Progress:
		return "progress"
	case Completed:
		return "result"
	case Failed:
		return "error"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Event is a message from a running job to its issuer. Every job emits zero or
// more Progress events followed by exactly one Completed or Failed event,
// unless it is superseded first.
type Event struct {
	Token   Token
	Kind    Kind
	Percent int     // Progress only
	Pixels  []uint8 // Completed only
	Err     error   // Failed only
}

// Terminal reports whether e ends its job.
func (e Event) Terminal() bool {
	return e.Kind == Completed || e.Kind == Failed
}

// State is the lifecycle of the job a Dispatcher currently tracks.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateCancelled
)

var stateNames = [...]string{"idle", "running", "completed", "failed", "cancelled"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}
