// Package movelog implements the append-only log of superposed moves (§3).
package movelog

import (
	"fmt"

	"github.com/qreversi/referee/internal/board"
)

// Unresolved is the resolution state of a move that has not yet collapsed.
const Unresolved = -1

// Move is a pair of cell positions, canonicalized so A <= B, plus a
// resolution state: Unresolved (-1), or the index (0 or 1) of the
// endpoint the move resolved to.
type Move struct {
	A, B int
	R    int
}

// New canonicalizes (p1, p2) into a Move with the given resolution state.
func New(p1, p2, r int) Move {
	if p1 <= p2 {
		return Move{A: p1, B: p2, R: r}
	}
	return Move{A: p2, B: p1, R: r}
}

// Resolved reports whether the move has collapsed to a definite position.
func (m Move) Resolved() bool { return m.R != Unresolved }

// IsSelfPair reports whether this is the single-cell "last move" form
// (A == B), which never participates in the entanglement graph.
func (m Move) IsSelfPair() bool { return m.A == m.B }

// ResolvedPos returns the cell position this move resolved to. Panics if
// the move is still unresolved.
func (m Move) ResolvedPos() int {
	switch m.R {
	case 0:
		return m.A
	case 1:
		return m.B
	default:
		panic("movelog: ResolvedPos called on an unresolved move")
	}
}

// IndexOf returns the resolution index (0 or 1) of pos within this move's
// pair. Panics if pos is not one of the move's endpoints.
func (m Move) IndexOf(pos int) int {
	switch pos {
	case m.A:
		return 0
	case m.B:
		return 1
	default:
		panic(fmt.Sprintf("movelog: position %d is not an endpoint of move (%d,%d)", pos, m.A, m.B))
	}
}

// Other returns the endpoint of the pair that is not pos. Panics if pos is
// not one of the move's endpoints.
func (m Move) Other(pos int) int {
	switch pos {
	case m.A:
		return m.B
	case m.B:
		return m.A
	default:
		panic(fmt.Sprintf("movelog: position %d is not an endpoint of move (%d,%d)", pos, m.A, m.B))
	}
}

// ColorOf returns the color owning move index i: Black for even indices,
// White for odd ones (§3 "Move ownership").
func ColorOf(i int) board.Cell {
	if i%2 == 0 {
		return board.Black
	}
	return board.White
}

// Log is the ordered, append-only history of moves.
type Log struct {
	moves []Move
}

// NewSeeded returns a log pre-populated with the four trivially-resolved
// moves representing the standard initial stones on a W x H board placed
// at its center 2x2 square. Indices 0..3 are Black, White, Black, White
// (§3), matching the standard Reversi diagonal pattern.
func NewSeeded() *Log {
	cx, cy := board.Width/2, board.Height/2
	blackA := board.Pos(cx, cy-1)
	whiteA := board.Pos(cx-1, cy-1)
	blackB := board.Pos(cx-1, cy)
	whiteB := board.Pos(cx, cy)

	l := &Log{}
	l.moves = []Move{
		{A: blackA, B: blackA, R: 0}, // index 0: Black
		{A: whiteA, B: whiteA, R: 0}, // index 1: White
		{A: blackB, B: blackB, R: 0}, // index 2: Black
		{A: whiteB, B: whiteB, R: 0}, // index 3: White
	}
	return l
}

// SeedPositions returns the board positions and colors the seeded moves
// should write, for initial board setup.
func (l *Log) SeedPositions() []struct {
	Pos   int
	Color board.Cell
} {
	out := make([]struct {
		Pos   int
		Color board.Cell
	}, 4)
	for i := 0; i < 4; i++ {
		out[i].Pos = l.moves[i].A
		out[i].Color = ColorOf(i)
	}
	return out
}

// Len returns the number of moves in the log.
func (l *Log) Len() int { return len(l.moves) }

// At returns the move at index i.
func (l *Log) At(i int) Move { return l.moves[i] }

// Append adds a new move to the end of the log and returns its index.
func (l *Log) Append(m Move) int {
	l.moves = append(l.moves, m)
	return len(l.moves) - 1
}

// SetResolution transitions move i's resolution state from Unresolved to
// idx (0 or 1). Panics if the move was already resolved (resolution state
// must transition exactly once and never revert, §8).
func (l *Log) SetResolution(i, idx int) {
	if l.moves[i].R != Unresolved {
		panic(fmt.Sprintf("movelog: move %d resolved twice", i))
	}
	l.moves[i].R = idx
}

// ColorOf returns the color owning move i.
func (l *Log) ColorOf(i int) board.Cell { return ColorOf(i) }

// UnresolvedIndices returns the indices of all unresolved moves, in log order.
func (l *Log) UnresolvedIndices() []int {
	var out []int
	for i, m := range l.moves {
		if !m.Resolved() {
			out = append(out, i)
		}
	}
	return out
}
