package main

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
)

func TestRandomStrategySingleCellPlaysItTwice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a, b := RandomStrategy([]int{7}, rng)
	if a != 7 || b != 7 {
		t.Errorf("RandomStrategy([7]) = (%d,%d), want (7,7)", a, b)
	}
}

func TestRandomStrategyPicksTwoDistinctCells(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cells := []int{1, 2, 3, 4}
	for i := 0; i < 50; i++ {
		a, b := RandomStrategy(cells, rng)
		if a == b {
			t.Fatalf("RandomStrategy returned (%d,%d), want distinct positions", a, b)
		}
	}
}

func TestRunRespondsToInitPlayQuit(t *testing.T) {
	in := strings.NewReader(
		`{"action":"init","index":0,"names":["a","b"],"size":[6,6],"white":"x","black":"o","quantum":"=","empty":"_","board":[]}` + "\n" +
			`{"action":"play","board":["o","x","_","_","_","_"]}` + "\n" +
			`{"action":"quit"}` + "\n",
	)
	var out bytes.Buffer
	rng := rand.New(rand.NewSource(42))

	if err := run(in, &out, rng, RandomStrategy); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("output = %q, want at least an init ack and a play reply", out.String())
	}
	if lines[0] != "" {
		t.Errorf("init ack = %q, want empty line", lines[0])
	}
	var reply struct {
		Positions [2]int `json:"positions"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &reply); err != nil {
		t.Fatalf("play reply not JSON: %v", err)
	}
	for _, p := range reply.Positions {
		if p < 2 || p > 5 {
			t.Errorf("play reply position %d, want one of the 4 non-classical cells", p)
		}
	}
}
