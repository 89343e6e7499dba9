// Package referee implements the turn loop orchestrator (§4.6): it drives
// two Transports through init/play/select/quit, enforces per-player time
// budgets, and decides the winner. It holds no process or socket code of
// its own — that lives in internal/solverproc.
package referee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/qreversi/referee/internal/board"
	"github.com/qreversi/referee/internal/collapse"
	"github.com/qreversi/referee/internal/display"
	"github.com/qreversi/referee/internal/quantumgo"
	"github.com/qreversi/referee/internal/wire"
)

// Result is the outcome of a completed match.
type Result struct {
	// Forfeited is the index of the player who forfeited, or -1 if the
	// game ended normally (board filled).
	Forfeited int
	Reason    Reason

	// Winner is the winning player index, or -1 for a draw.
	Winner int

	Scores [2]int
}

// Referee owns the engine, the two transports, and their time budgets.
type Referee struct {
	engine  *quantumgo.Engine
	players [2]Transport
	names   [2]string
	budgets [2]*Budget
	log     *log.Logger
	printer *display.Printer
	step    int
}

// Option configures a Referee at construction.
type Option func(*Referee)

// WithTimeLimit overrides DefaultTimeLimit for both players.
func WithTimeLimit(d time.Duration) Option {
	return func(r *Referee) {
		r.budgets[0] = NewBudget(d)
		r.budgets[1] = NewBudget(d)
	}
}

// WithLogger overrides the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Referee) { r.log = l }
}

// WithDisplay enables the per-step banner, board grid, entanglement list
// and running counts, written to w (§6.3, §12).
func WithDisplay(w io.Writer) Option {
	return func(r *Referee) { r.printer = display.New(w) }
}

// New builds a Referee for a fresh game between p0 (BLACK) and p1 (WHITE).
func New(p0, p1 Transport, opts ...Option) *Referee {
	r := &Referee{
		engine:  quantumgo.New(),
		players: [2]Transport{p0, p1},
		names:   [2]string{p0.Name(), p1.Name()},
		budgets: [2]*Budget{NewBudget(DefaultTimeLimit), NewBudget(DefaultTimeLimit)},
		log:     log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes init, the main loop, and teardown, returning the match
// Result. Forfeits are reported through Result, not through the error
// return; the error return is only for failures that are not a
// ForfeitError. A canceled parent context is not such a failure: the
// pending read ends and the player being waited on forfeits on timeout.
func (r *Referee) Run(ctx context.Context) (*Result, error) {
	if err := r.initBoth(ctx); err != nil {
		var fe *ForfeitError
		if errors.As(err, &fe) {
			return r.finish(ctx, fe), nil
		}
		return nil, err
	}

	turn := 0
	for !r.engine.Board.FullOfClassical() {
		idx := turn % 2
		if err := r.playOne(ctx, idx); err != nil {
			var fe *ForfeitError
			if errors.As(err, &fe) {
				return r.finish(ctx, fe), nil
			}
			return nil, err
		}
		turn++
	}
	return r.finish(ctx, nil), nil
}

func (r *Referee) initBoth(ctx context.Context) error {
	for idx := 0; idx < 2; idx++ {
		msg := wire.NewInitMessage(idx, r.names, r.engine.Board, r.engine.Log)
		if err := r.exchange(ctx, idx, msg, func([]byte) error { return nil }); err != nil {
			return err
		}
	}
	return nil
}

// playOne runs one full turn for player idx: play, then select if the
// move closed an entanglement cycle (§4.6 steps 1-7).
func (r *Referee) playOne(ctx context.Context, idx int) error {
	playMsg := wire.NewPlayMessage(r.engine.Board, r.engine.Log)

	var reply wire.PlayReply
	err := r.exchange(ctx, idx, playMsg, func(line []byte) error {
		decoded, err := wire.DecodePlayReply(line)
		if err != nil {
			return err
		}
		reply = decoded
		return nil
	})
	if err != nil {
		return err
	}

	if r.printer != nil {
		marker := byte('o')
		if idx == 1 {
			marker = 'x'
		}
		r.printer.Step(r.step, r.names[idx], marker, reply.Positions[0], reply.Positions[1])
		r.step++
	}

	_, cycleFound, err := r.engine.PlayMove(reply.Positions[0], reply.Positions[1])
	if err != nil {
		return &ForfeitError{Player: idx, Reason: ReasonInvalidMove, Err: err}
	}

	var resolved []collapse.Pending
	if cycleFound {
		resolved = append(resolved, r.engine.Pending...)
		if err := r.runSelect(ctx, idx); err != nil {
			return err
		}
	}
	r.renderState(resolved)
	return nil
}

// runSelect offers the head pair to the opposite player and applies the
// collapse resolver to their choice (§4.6 step 6, §9 sentinel note: the
// select is always sent to the opponent of the player who just moved).
func (r *Referee) runSelect(ctx context.Context, moverIdx int) error {
	opp := 1 - moverIdx
	a, b, ok := r.engine.HeadPair()
	if !ok {
		panic("referee: runSelect called with no pending entanglement")
	}
	msg := wire.NewSelectMessage(a, b, r.engine.Board, r.engine.Log)

	var reply wire.SelectReply
	err := r.exchange(ctx, opp, msg, func(line []byte) error {
		decoded, err := wire.DecodeSelectReply(line)
		if err != nil {
			return err
		}
		reply = decoded
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.engine.Select(reply.Select); err != nil {
		return &ForfeitError{Player: opp, Reason: ReasonInvalidSelect, Err: err}
	}
	return nil
}

// exchange sends msg to player idx and decodes its reply via decode,
// bounding the wait by idx's remaining budget and charging the elapsed
// time back to it (§5, §7).
func (r *Referee) exchange(ctx context.Context, idx int, msg any, decode func([]byte) error) error {
	budget := r.budgets[idx]
	if budget.Exceeded() {
		return &ForfeitError{Player: idx, Reason: ReasonTimeout}
	}

	deadline, cancel := context.WithTimeout(ctx, budget.Remaining())
	defer cancel()

	if err := r.players[idx].Send(deadline, msg); err != nil {
		return &ForfeitError{Player: idx, Reason: ReasonProcessFailure, Err: err}
	}

	start := time.Now()
	line, err := r.players[idx].Receive(deadline)
	elapsed := time.Since(start)
	exceeded := budget.Charge(elapsed)

	if err != nil {
		if deadline.Err() != nil || exceeded {
			return &ForfeitError{Player: idx, Reason: ReasonTimeout, Err: err}
		}
		return &ForfeitError{Player: idx, Reason: ReasonProcessFailure, Err: err}
	}
	if exceeded {
		return &ForfeitError{Player: idx, Reason: ReasonTimeout}
	}

	if err := decode(line); err != nil {
		return &ForfeitError{Player: idx, Reason: ReasonProtocolError, Err: err}
	}
	return nil
}

// finish sends a best-effort quit to both solvers and assembles the
// Result (§4.6 "when the board fills", §5 "Cancellation").
func (r *Referee) finish(ctx context.Context, forfeit *ForfeitError) *Result {
	r.quitBoth(ctx)

	black := r.engine.Board.BlackCount()
	white := r.engine.Board.WhiteCount()
	res := &Result{Forfeited: -1, Scores: [2]int{black, white}}

	if forfeit != nil {
		r.log.Printf("player %d forfeits: %s", forfeit.Player, forfeit.Reason)
		res.Forfeited = forfeit.Player
		res.Reason = forfeit.Reason
		res.Winner = 1 - forfeit.Player
		return res
	}

	switch {
	case black > white:
		res.Winner = 0
	case white > black:
		res.Winner = 1
	default:
		res.Winner = -1
	}
	return res
}

func (r *Referee) quitBoth(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()
	for idx := 0; idx < 2; idx++ {
		_ = r.players[idx].Send(ctx, wire.NewQuitMessage())
		_ = r.players[idx].Close()
	}
}

// renderState prints the board grid, any cyclic entanglement resolved this
// turn, and running counts together, in that order, after the turn's
// collapse (if any) has already been applied (§6.3).
func (r *Referee) renderState(resolved []collapse.Pending) {
	if r.printer == nil {
		return
	}
	r.printer.Grid(r.engine.Board)
	r.printer.Entanglement(resolved)
	r.printer.Counts('o', 'x', r.engine.Board.BlackCount(), r.engine.Board.WhiteCount())
}

// Board exposes the live board for display rendering (§6.3).
func (r *Referee) Board() *board.Board { return r.engine.Board }

// Names returns the two players' names in index order.
func (r *Referee) Names() [2]string { return r.names }

// LogMoves renders the final move log for stdout reporting (§6.3).
func (r *Referee) LogMoves() []string {
	out := make([]string, r.engine.Log.Len())
	for i := 0; i < r.engine.Log.Len(); i++ {
		m := r.engine.Log.At(i)
		out[i] = fmt.Sprintf("%d (%d,%d) %d", i, m.A, m.B, m.R)
	}
	return out
}
