package quantumgo

import (
	"testing"

	"github.com/qreversi/referee/internal/board"
)

func TestNewSeedsStandardPattern(t *testing.T) {
	e := New()
	want := map[int]board.Cell{15: board.Black, 14: board.White, 20: board.Black, 21: board.White}
	for pos, color := range want {
		if got := e.Board.Get(pos); got != color {
			t.Errorf("board[%d] = %v, want %v", pos, got, color)
		}
	}
}

// TestScenarioOneInvalidLastCell reproduces spec §8 scenario 1: placing a
// single position when more than one empty cell remains is invalid.
func TestScenarioOneInvalidLastCell(t *testing.T) {
	e := New()
	_, _, err := e.PlayMove(13, 13)
	if err != ErrInvalidMove {
		t.Fatalf("PlayMove(13,13) = %v, want ErrInvalidMove", err)
	}
}

// TestScenarioTwoSingleSuperpositionNoCycle reproduces spec §8 scenario 2.
func TestScenarioTwoSingleSuperpositionNoCycle(t *testing.T) {
	e := New()
	idx, cycleFound, err := e.PlayMove(13, 22)
	if err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if cycleFound {
		t.Fatalf("unexpected cycle on first superposed move")
	}
	if idx != 4 {
		t.Fatalf("move index = %d, want 4", idx)
	}
	if e.Board.Get(13) != board.Quantum || e.Board.Get(22) != board.Quantum {
		t.Errorf("endpoints not marked Quantum")
	}
	if e.Log.Len() != 5 {
		t.Errorf("log length = %d, want 5", e.Log.Len())
	}
}

// TestScenarioThreeCycleClosesAndSelects reproduces spec §8 scenario 3.
func TestScenarioThreeCycleClosesAndSelects(t *testing.T) {
	e := New()
	if _, _, err := e.PlayMove(13, 22); err != nil {
		t.Fatalf("move 0: %v", err)
	}
	_, cycleFound, err := e.PlayMove(13, 22)
	if err != nil {
		t.Fatalf("move 1: %v", err)
	}
	if !cycleFound {
		t.Fatalf("expected cycle on second identical move")
	}
	a, b, ok := e.HeadPair()
	if !ok || a != 13 || b != 22 {
		t.Fatalf("HeadPair() = (%d,%d,%v), want (13,22,true)", a, b, ok)
	}
	if err := e.Select(13); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if e.HasPending() {
		t.Errorf("pending set not cleared after Select")
	}
	if got := e.Board.Get(13); got != board.White {
		t.Errorf("board[13] = %v, want White", got)
	}
	if got := e.Board.Get(22); got != board.Black {
		t.Errorf("board[22] = %v, want Black", got)
	}
}

func TestPlayMoveRejectsClassicalEndpoint(t *testing.T) {
	e := New()
	_, _, err := e.PlayMove(15, 1) // 15 already Black
	if err != ErrInvalidMove {
		t.Fatalf("PlayMove onto classical cell = %v, want ErrInvalidMove", err)
	}
}

// TestPlayMoveRejectsLastCellAtWrongPosition exercises §4.2 rule 3 in the
// a == b branch: even with exactly one non-classical cell left on the
// board, naming some other, already-classical cell is invalid — it must
// forfeit rather than overwrite a resolved stone.
func TestPlayMoveRejectsLastCellAtWrongPosition(t *testing.T) {
	e := New()
	for pos := 0; pos < board.NumCells; pos++ {
		e.Board.Set(pos, board.Black)
	}
	e.Board.Set(5, board.Quantum) // the sole non-classical cell is position 5

	_, _, err := e.PlayMove(0, 0) // position 0 is already Black, not the remaining cell
	if err != ErrInvalidMove {
		t.Fatalf("PlayMove(0,0) = %v, want ErrInvalidMove", err)
	}
	if got := e.Board.Get(0); got != board.Black {
		t.Errorf("board[0] = %v, want unchanged Black", got)
	}
}

func TestPlayMoveAllowsQuantumStacking(t *testing.T) {
	e := New()
	if _, _, err := e.PlayMove(1, 2); err != nil {
		t.Fatalf("move 0: %v", err)
	}
	// Stacking: both endpoints (1 and a new one) already/soon Quantum is legal.
	if _, _, err := e.PlayMove(1, 3); err != nil {
		t.Fatalf("move 1 (stacking on position 1): %v", err)
	}
}
