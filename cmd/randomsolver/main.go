// Command randomsolver is a reference Quantum Reversi solver: it plays
// uniformly random legal positions and selects uniformly at random on
// entanglement resolution, restoring the role tadashi.py played in the
// original implementation as a scripted/deterministic opponent (§12).
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"
)

// Strategy chooses a move given the set of non-classical cell positions.
// A single-element cells means only one non-classical cell remains.
type Strategy func(cells []int, rng *rand.Rand) (int, int)

// RandomStrategy picks two distinct positions uniformly at random, or the
// lone remaining cell twice when only one is left.
func RandomStrategy(cells []int, rng *rand.Rand) (int, int) {
	if len(cells) == 1 {
		return cells[0], cells[0]
	}
	i := rng.Intn(len(cells))
	j := rng.Intn(len(cells) - 1)
	if j >= i {
		j++
	}
	return cells[i], cells[j]
}

type envelope struct {
	Action       string   `json:"action"`
	Board        []string `json:"board"`
	Entanglement [2]int   `json:"entanglement"`
	White        string   `json:"white"`
	Black        string   `json:"black"`
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed; fix this for reproducible games")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if err := run(os.Stdin, os.Stdout, rng, RandomStrategy); err != nil {
		fmt.Fprintf(os.Stderr, "randomsolver: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, rng *rand.Rand, strategy Strategy) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	writer := bufio.NewWriter(out)

	var white, black string

	for scanner.Scan() {
		var e envelope
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return fmt.Errorf("malformed message: %w", err)
		}

		switch e.Action {
		case "init":
			white, black = e.White, e.Black
			fmt.Fprintln(writer)

		case "play":
			var cells []int
			for i, s := range e.Board {
				if s != white && s != black {
					cells = append(cells, i)
				}
			}
			a, b := strategy(cells, rng)
			if err := json.NewEncoder(writer).Encode(map[string][2]int{"positions": {a, b}}); err != nil {
				return err
			}

		case "select":
			choice := e.Entanglement[0]
			if rng.Intn(2) == 1 {
				choice = e.Entanglement[1]
			}
			if err := json.NewEncoder(writer).Encode(map[string]int{"select": choice}); err != nil {
				return err
			}

		case "quit":
			writer.Flush()
			return nil
		}
		writer.Flush()
	}
	return scanner.Err()
}
