package job

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Message types of the worker protocol.
const (
	TypeStart    = "start"
	TypeCancel   = "cancel"
	TypeProgress = "progress"
	TypeResult   = "result"
	TypeError    = "error"
)

// Request is sent by an issuer to a worker.
type Request struct {
	Type          string `cbor:"type"`
	PixelBuffer   []byte `cbor:"pixelBuffer,omitempty"`
	LUTSamples    []byte `cbor:"lutSamples,omitempty"`
	LUTEdgeLength int    `cbor:"lutEdgeLength,omitempty"`
}

// Response is sent by a worker to its issuer. Per token, zero or more progress
// responses are followed by exactly one result or error.
type Response struct {
	Type        string `cbor:"type"`
	Token       Token  `cbor:"token"`
	Percent     int    `cbor:"percent,omitempty"`
	PixelBuffer []byte `cbor:"pixelBuffer,omitempty"`
	Message     string `cbor:"message,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("job: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("job: CBOR decoder initialization failed: " + err.Error())
	}
}

// NewEncoder returns a CBOR stream encoder for protocol messages.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR stream decoder for protocol messages.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// NewResponse converts an event into its wire form. Unexpected faults keep
// their detail out of the message.
func NewResponse(ev Event) Response {
	switch ev.Kind {
	case Progress:
		return Response{Type: TypeProgress, Token: ev.Token, Percent: ev.Percent}
	case Completed:
		return Response{Type: TypeResult, Token: ev.Token, PixelBuffer: ev.Pixels}
	default:
		return Response{Type: TypeError, Token: ev.Token, Message: message(ev.Err)}
	}
}

func message(err error) string {
	if err == nil || errors.Is(err, ErrUnexpected) {
		return ErrUnexpected.Error()
	}
	return err.Error()
}
