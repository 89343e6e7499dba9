// Package collapse implements the collapse resolver (§4.5): turning a
// detected entanglement cycle into a pending selection, then propagating
// the opponent's choice by constraint and replaying Reversi flips.
package collapse

import (
	"errors"
	"sort"

	"github.com/qreversi/referee/internal/board"
	"github.com/qreversi/referee/internal/flip"
	"github.com/qreversi/referee/internal/movelog"
)

// Pending is one entry of the entanglement resolution set: the log index
// of an unresolved move and its canonical pair.
type Pending struct {
	Index int
	A, B  int
}

// ErrNoPending is returned when Apply is called with an empty pending list.
var ErrNoPending = errors.New("collapse: no pending entanglement")

// ErrInvalidSelect is returned when the chosen position is not one of the
// head entry's two endpoints.
var ErrInvalidSelect = errors.New("collapse: selected position is not in the offered pair")

type pairKey struct{ a, b int }

// BuildPending computes the full set of moves that must collapse once the
// given cycle resolves (§4.5 steps 1-2): the cycle's own edges plus any
// tree of unresolved moves hanging off a cycle vertex, expanded to
// fixpoint. The result is sorted by log index descending, so the move
// that just closed the cycle is always first.
func BuildPending(log *movelog.Log, cycle []int) []Pending {
	paths := map[pairKey]bool{}
	entireties := map[int]bool{}
	for _, v := range cycle {
		entireties[v] = true
	}

	n := len(cycle)
	for i := 0; i < n; i++ {
		u, v := cycle[i], cycle[(i+1)%n]
		paths[canon(u, v)] = true
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < log.Len(); i++ {
			m := log.At(i)
			if m.Resolved() || m.IsSelfPair() {
				continue
			}
			key := canon(m.A, m.B)
			if paths[key] {
				continue
			}
			aIn, bIn := entireties[m.A], entireties[m.B]
			if !aIn && !bIn {
				continue
			}
			paths[key] = true
			changed = true
			if aIn && !bIn {
				entireties[m.B] = true
			} else if bIn && !aIn {
				entireties[m.A] = true
			}
		}
	}

	var pending []Pending
	for i := 0; i < log.Len(); i++ {
		m := log.At(i)
		if m.Resolved() || m.IsSelfPair() {
			continue
		}
		if paths[canon(m.A, m.B)] {
			pending = append(pending, Pending{Index: i, A: m.A, B: m.B})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Index > pending[j].Index })
	return pending
}

func canon(a, b int) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// Apply resolves the head of pending to choice, propagates the remaining
// entries by constraint to fixpoint, and writes+flips every resulting
// stone (§4.5 steps 3-6). The head's stone is written and flipped first;
// the rest are written and flipped in pending's iteration order
// (descending log index), not chronological placement order (§9).
func Apply(b *board.Board, log *movelog.Log, pending []Pending, choice int) error {
	if len(pending) == 0 {
		return ErrNoPending
	}
	head := pending[0]
	if choice != head.A && choice != head.B {
		return ErrInvalidSelect
	}

	log.SetResolution(head.Index, head2idx(head, choice))
	writeAndFlip(b, head.Index, choice)

	check := map[int]bool{choice: true}
	rest := pending[1:]
	resolvedPos := make([]int, len(rest))
	for i := range resolvedPos {
		resolvedPos[i] = -1
	}

	for changed := true; changed; {
		changed = false
		for i, e := range rest {
			if resolvedPos[i] != -1 {
				continue
			}
			aIn, bIn := check[e.A], check[e.B]
			if aIn == bIn {
				continue // both or neither committed: not resolvable yet
			}
			resolved := e.A
			if aIn {
				resolved = e.B
			}
			resolvedPos[i] = resolved
			check[resolved] = true
			changed = true
		}
	}

	for i, e := range rest {
		if resolvedPos[i] == -1 {
			panic("collapse: propagation left a pending move unresolved")
		}
		log.SetResolution(e.Index, head2idx(e, resolvedPos[i]))
	}
	for i, e := range rest {
		writeAndFlip(b, e.Index, resolvedPos[i])
	}
	return nil
}

func head2idx(p Pending, choice int) int {
	if choice == p.A {
		return 0
	}
	return 1
}

func writeAndFlip(b *board.Board, moveIndex, pos int) {
	color := movelog.ColorOf(moveIndex)
	b.Set(pos, color)
	flip.Apply(b, pos, color)
}
