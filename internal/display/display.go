// Package display renders the referee's stdout output: the per-step
// banner during play (when enabled) and the final move log / score
// report (§6.3), restoring the banner detail from the original
// implementation (§12).
package display

import (
	"fmt"
	"io"

	"github.com/qreversi/referee/internal/board"
	"github.com/qreversi/referee/internal/collapse"
)

// Printer writes the referee's human-readable output to w.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer { return &Printer{w: w} }

// Step prints the per-step banner: step number, acting player's name and
// color marker, and the raw positions they sent.
func (p *Printer) Step(n int, name string, marker byte, a, b int) {
	fmt.Fprintf(p.w, "Step %03d: %s [%c]  move: %d, %d\n", n, name, marker, a, b)
}

// Grid prints the board, one row per line, each prefixed with ';'.
func (p *Printer) Grid(b *board.Board) {
	for y := 0; y < board.Height; y++ {
		fmt.Fprint(p.w, ";")
		for x := 0; x < board.Width; x++ {
			fmt.Fprint(p.w, b.Get(board.Pos(x, y)).String())
		}
		fmt.Fprintln(p.w)
	}
}

// Entanglement prints the pending collapse list, one pair per line, when
// a cycle has just closed.
func (p *Printer) Entanglement(pending []collapse.Pending) {
	if len(pending) == 0 {
		return
	}
	fmt.Fprintln(p.w, "Cyclic entanglement:")
	for _, e := range pending {
		fmt.Fprintf(p.w, " (%d, %d)\n", e.A, e.B)
	}
}

// Counts prints the running stone counts for both colors.
func (p *Printer) Counts(blackMarker, whiteMarker byte, black, white int) {
	fmt.Fprintf(p.w, "State  %c: %d, %c: %d\n", blackMarker, black, whiteMarker, white)
}

// MoveLog prints one "i (a,b) r" line per move in the final log.
func (p *Printer) MoveLog(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(p.w, l)
	}
}

// Forfeit prints the forfeit-ending report (§6.3: "No score" variant).
func (p *Printer) Forfeit(message string, winnerName string) {
	fmt.Fprintln(p.w, message)
	fmt.Fprintln(p.w, "### No score")
	fmt.Fprintf(p.w, "### Winner: %s\n", winnerName)
}

// Score prints the normal-termination report: the final stone counts and
// either the winner's name or "Draw game".
func (p *Printer) Score(name0 string, score0 int, name1 string, score1 int, winnerName string, draw bool) {
	fmt.Fprintf(p.w, "### Score: %s: %d, %s: %d\n", name0, score0, name1, score1)
	if draw {
		fmt.Fprintln(p.w, "### Draw game")
		return
	}
	fmt.Fprintf(p.w, "### Winner: %s\n", winnerName)
}
