package referee

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeTransport is a scripted in-memory Transport: each call to Receive
// pops the next line off replies, after waiting delay (or ctx's deadline,
// whichever comes first).
type fakeTransport struct {
	name    string
	replies [][]byte
	idx     int
	delay   time.Duration
	sendErr error
}

func (f *fakeTransport) Send(ctx context.Context, msg any) error { return f.sendErr }

func (f *fakeTransport) Receive(ctx context.Context) ([]byte, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.idx >= len(f.replies) {
		return nil, errors.New("fake: script exhausted")
	}
	line := f.replies[f.idx]
	f.idx++
	return line, nil
}

func (f *fakeTransport) Close() error { return nil }
func (f *fakeTransport) Name() string { return f.name }

// TestRunScenarioOneInvalidMoveForfeits reproduces spec §8 scenario 1.
func TestRunScenarioOneInvalidMoveForfeits(t *testing.T) {
	p0 := &fakeTransport{name: "p0", replies: [][]byte{
		[]byte(`{}`),                    // init ack
		[]byte(`{"positions":[13,13]}`), // invalid: more than one empty cell left
	}}
	p1 := &fakeTransport{name: "p1", replies: [][]byte{[]byte(`{}`)}}

	r := New(p0, p1)
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Forfeited != 0 {
		t.Fatalf("Forfeited = %d, want 0", res.Forfeited)
	}
	if res.Reason != ReasonInvalidMove {
		t.Errorf("Reason = %q, want %q", res.Reason, ReasonInvalidMove)
	}
	if res.Winner != 1 {
		t.Errorf("Winner = %d, want 1", res.Winner)
	}
}

// TestRunScenarioFiveTimeout covers spec §8 scenario 5: player 0 overruns
// its budget and forfeits on timeout. The fake delays every reply, so the
// overrun already happens on the init exchange, before any play message.
func TestRunScenarioFiveTimeout(t *testing.T) {
	p0 := &fakeTransport{name: "p0", replies: [][]byte{
		[]byte(`{}`),
		[]byte(`{"positions":[13,22]}`),
	}, delay: 100 * time.Millisecond}
	p1 := &fakeTransport{name: "p1", replies: [][]byte{[]byte(`{}`)}}

	r := New(p0, p1, WithTimeLimit(10*time.Millisecond))
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Forfeited != 0 {
		t.Fatalf("Forfeited = %d, want 0", res.Forfeited)
	}
	if res.Reason != ReasonTimeout {
		t.Errorf("Reason = %q, want %q", res.Reason, ReasonTimeout)
	}
	if res.Winner != 1 {
		t.Errorf("Winner = %d, want 1", res.Winner)
	}
}

// TestRunCycleSelectFlow drives a 2-cycle through to a select exchange,
// then forces a protocol error to terminate the game and confirms the
// select round-trip actually happened (board reflects the choice).
func TestRunCycleSelectFlow(t *testing.T) {
	p0 := &fakeTransport{name: "p0", replies: [][]byte{
		[]byte(`{}`),                    // init ack
		[]byte(`{"positions":[13,22]}`), // move 0 (Black)
		[]byte(`{"select":13}`),         // opponent's select for the closed cycle
		[]byte(`not-json`),              // next play: malformed, forces forfeit
	}}
	p1 := &fakeTransport{name: "p1", replies: [][]byte{
		[]byte(`{}`),                    // init ack
		[]byte(`{"positions":[13,22]}`), // move 1 (White) closes the 2-cycle
	}}

	r := New(p0, p1)
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Forfeited != 0 || res.Reason != ReasonProtocolError {
		t.Fatalf("Result = %+v, want player 0 forfeits with a protocol error", res)
	}
	if got := r.Board().Get(13); got.String() != "x" {
		t.Errorf("board[13] = %v, want White (select resolved move 1 to 13)", got)
	}
	if got := r.Board().Get(22); got.String() != "o" {
		t.Errorf("board[22] = %v, want Black (propagation resolved move 0 to 22)", got)
	}
}

func TestRunScenarioInvalidSelectForfeits(t *testing.T) {
	p0 := &fakeTransport{name: "p0", replies: [][]byte{
		[]byte(`{}`),
		[]byte(`{"positions":[13,22]}`),
		[]byte(`{"select":5}`), // in range, but not one of the offered pair (13,22)
	}}
	p1 := &fakeTransport{name: "p1", replies: [][]byte{
		[]byte(`{}`),
		[]byte(`{"positions":[13,22]}`),
	}}

	r := New(p0, p1)
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Forfeited != 0 {
		t.Fatalf("Forfeited = %d, want 0 (the opponent asked to select)", res.Forfeited)
	}
	if res.Reason != ReasonInvalidSelect {
		t.Errorf("Reason = %q, want %q", res.Reason, ReasonInvalidSelect)
	}
}
