// Package quantumgo is the pure Quantum Reversi engine: the board, move
// log, entanglement graph and collapse resolver wired into one API that a
// transport (see internal/referee, internal/solverproc) drives. It holds
// no knowledge of processes, clocks, or the wire protocol.
package quantumgo

import (
	"errors"

	"github.com/qreversi/referee/internal/board"
	"github.com/qreversi/referee/internal/collapse"
	"github.com/qreversi/referee/internal/flip"
	"github.com/qreversi/referee/internal/movelog"
	"github.com/qreversi/referee/internal/tangle"
)

// ErrInvalidMove is returned by PlayMove when the positions fail
// validation (§4.2).
var ErrInvalidMove = errors.New("quantumgo: invalid move")

// Engine is the mutable game state: the board and its move log.
type Engine struct {
	Board *board.Board
	Log   *movelog.Log

	// Pending is the entanglement resolution set awaiting a Select call;
	// nil when no cycle is outstanding.
	Pending []collapse.Pending
}

// New returns an Engine seeded with the four initial stones (§4.6).
func New() *Engine {
	log := movelog.NewSeeded()
	b := board.New()
	for _, s := range log.SeedPositions() {
		b.Set(s.Pos, s.Color)
	}
	return &Engine{Board: b, Log: log}
}

// Canonicalize sorts a pair of positions so A <= B (§3).
func Canonicalize(p1, p2 int) (a, b int) {
	if p1 <= p2 {
		return p1, p2
	}
	return p2, p1
}

// Validate checks a canonicalized pair against §4.2's rules. Rule 3
// (neither endpoint already classical) applies unconditionally, even in
// the a == b last-cell case: a buggy or adversarial solver can still name
// an already-colored cell there, and that must forfeit rather than
// silently overwrite it.
func Validate(b *board.Board, a, bb int) error {
	if a == bb && b.ClassicalCount() != board.NumCells-1 {
		return ErrInvalidMove
	}
	if c := b.Get(a); c == board.Black || c == board.White {
		return ErrInvalidMove
	}
	if c := b.Get(bb); c == board.Black || c == board.White {
		return ErrInvalidMove
	}
	return nil
}

// PlayMove validates and applies a new move at canonicalized (a, b),
// writing QUANTUM markers, appending to the log (unless a == b, the
// single-cell last-move case, which never enters the graph), and running
// the cycle detector. If a cycle closes, e.Pending is populated and the
// caller must obtain a Select response before calling PlayMove again.
func (e *Engine) PlayMove(p1, p2 int) (moveIndex int, cycleFound bool, err error) {
	a, b := Canonicalize(p1, p2)
	if err := Validate(e.Board, a, b); err != nil {
		return -1, false, err
	}

	if a == b {
		// The single remaining non-classical cell, as Validate checked.
		// Validate does not consult the log: it relies on every
		// unresolved move keeping two distinct non-classical endpoints,
		// so none can be left once only one such cell remains. Write it
		// directly without entering the graph.
		color := movelog.ColorOf(e.Log.Len())
		e.Board.Set(a, color)
		flip.Apply(e.Board, a, color)
		return -1, false, nil
	}

	e.Board.Set(a, board.Quantum)
	e.Board.Set(b, board.Quantum)
	idx := e.Log.Append(movelog.New(a, b, movelog.Unresolved))

	g := tangle.Build(e.Log)
	cycle, found := g.FindCycle(a)
	if !found {
		return idx, false, nil
	}
	e.Pending = collapse.BuildPending(e.Log, cycle)
	return idx, true, nil
}

// HeadPair returns the pair offered to the opposite player for a pending
// Select, and whether a cycle is outstanding.
func (e *Engine) HeadPair() (a, b int, ok bool) {
	if len(e.Pending) == 0 {
		return 0, 0, false
	}
	return e.Pending[0].A, e.Pending[0].B, true
}

// Select applies the opponent's choice, propagating and flipping per
// §4.5 steps 4-6, and clears the pending set.
func (e *Engine) Select(choice int) error {
	if err := collapse.Apply(e.Board, e.Log, e.Pending, choice); err != nil {
		return err
	}
	e.Pending = nil
	return nil
}

// HasPending reports whether a cycle resolution is outstanding.
func (e *Engine) HasPending() bool { return len(e.Pending) > 0 }
