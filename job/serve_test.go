package job

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mmuldo/lutter/lut"
)

func encodeRequests(t *testing.T, reqs ...Request) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	return &buf
}

func serve(t *testing.T, reqs ...Request) []Response {
	t.Helper()
	var out bytes.Buffer
	if err := Serve(testContext(t), encodeRequests(t, reqs...), &out, nil); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var resps []Response
	dec := NewDecoder(&out)
	for {
		var r Response
		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		resps = append(resps, r)
	}
	return resps
}

func startRequest(t *testing.T, pixels []uint8, n int) Request {
	t.Helper()
	return Request{
		Type:          TypeStart,
		PixelBuffer:   pixels,
		LUTSamples:    identity(t, n).Samples(),
		LUTEdgeLength: n,
	}
}

func TestServeSingleJob(t *testing.T) {
	pixels := []uint8{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
		128, 128, 128, 255,
	}
	resps := serve(t, startRequest(t, pixels, 2))

	want := []string{TypeProgress, TypeProgress, TypeProgress, TypeProgress, TypeResult}
	if len(resps) != len(want) {
		t.Fatalf("got %d responses %+v, want %d", len(resps), resps, len(want))
	}
	for i, r := range resps {
		if r.Type != want[i] || r.Token != 1 {
			t.Errorf("response %d = %s/%d, want %s/1", i, r.Type, r.Token, want[i])
		}
	}
	if resps[3].Percent != 100 {
		t.Errorf("last progress %d, want 100", resps[3].Percent)
	}
	if !bytes.Equal(resps[4].PixelBuffer, pixels) {
		t.Errorf("result %v, want %v", resps[4].PixelBuffer, pixels)
	}
}

func TestServeConstructionError(t *testing.T) {
	resps := serve(t, Request{
		Type:          TypeStart,
		PixelBuffer:   gradient(4),
		LUTSamples:    make([]uint8, 80),
		LUTEdgeLength: 3,
	})

	if len(resps) != 1 {
		t.Fatalf("got %d responses %+v, want 1", len(resps), resps)
	}
	if resps[0].Type != TypeError || !strings.Contains(resps[0].Message, "sample count") {
		t.Errorf("response %+v, want a size mismatch error", resps[0])
	}
}

func TestServeHugeEdgeLength(t *testing.T) {
	resps := serve(t, Request{
		Type:          TypeStart,
		PixelBuffer:   gradient(4),
		LUTEdgeLength: 1 << 22,
	})

	if len(resps) != 1 {
		t.Fatalf("got %d responses %+v, want 1", len(resps), resps)
	}
	if resps[0].Type != TypeError || !strings.Contains(resps[0].Message, "sample count") {
		t.Errorf("response %+v, want a size mismatch error", resps[0])
	}
}

func TestServeSupersedes(t *testing.T) {
	resps := serve(t,
		startRequest(t, gradient(20000), 17),
		startRequest(t, gradient(300), 5),
	)
	if len(resps) == 0 {
		t.Fatal("no responses")
	}

	terminals := map[Token]int{}
	var last Token
	for i, r := range resps {
		if r.Token < last {
			t.Fatalf("response %d of token %d after token %d", i, r.Token, last)
		}
		last = r.Token
		if r.Type == TypeResult || r.Type == TypeError {
			terminals[r.Token]++
		}
	}

	if terminals[1] > 1 || terminals[2] != 1 {
		t.Errorf("terminal responses per token: %v", terminals)
	}
	if end := resps[len(resps)-1]; end.Type != TypeResult || end.Token != 2 {
		t.Errorf("final response %s/%d, want result/2", end.Type, end.Token)
	}
}

func TestServeCancelThenStart(t *testing.T) {
	resps := serve(t,
		startRequest(t, gradient(20000), 9),
		Request{Type: TypeCancel},
		Request{Type: "bogus"},
		startRequest(t, gradient(10), 2),
	)

	end := resps[len(resps)-1]
	if end.Type != TypeResult || end.Token != 3 {
		t.Errorf("final response %s/%d, want result/3", end.Type, end.Token)
	}
	for _, r := range resps {
		if r.Token == 2 {
			t.Errorf("response %+v for the cancel token", r)
		}
	}
}

func TestServeEmpty(t *testing.T) {
	if resps := serve(t); len(resps) != 0 {
		t.Errorf("got %d responses for no requests", len(resps))
	}
}

func TestNewResponseHidesUnexpectedDetail(t *testing.T) {
	r := NewResponse(Event{Token: 4, Kind: Failed, Err: fault(errors.New("secret detail"))})
	if r.Type != TypeError || r.Message != ErrUnexpected.Error() {
		t.Errorf("response %+v, want the generic message", r)
	}

	r = NewResponse(Event{Token: 4, Kind: Failed, Err: fault(&lut.OutOfRangeError{X: 9, Size: 2})})
	if !strings.Contains(r.Message, "out of range") {
		t.Errorf("message %q does not name the range fault", r.Message)
	}
}
