// Package flip implements classical Reversi flipping (§4.3).
package flip

import "github.com/qreversi/referee/internal/board"

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1} /*      */, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Apply flips all stones captured by placing color c at pos, in all eight
// directions. Quantum cells act as opaque barriers: they stop a walk
// without being flipped and without closing a flippable segment.
func Apply(b *board.Board, pos int, c board.Cell) {
	opp := c.Opponent()
	x0, y0 := board.XY(pos)

	for _, d := range directions {
		x, y := x0+d[0], y0+d[1]
		var run []int
		for board.InBounds(x, y) {
			p := board.Pos(x, y)
			switch b.Get(p) {
			case opp:
				run = append(run, p)
			case c:
				for _, f := range run {
					b.Set(f, c)
				}
				run = nil
				x, y = -1, -1 // stop the walk
				continue
			default: // Empty or Quantum: opaque barrier, nothing flips
				run = nil
				x, y = -1, -1
				continue
			}
			x, y = x+d[0], y+d[1]
		}
	}
}
