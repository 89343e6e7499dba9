// Package wire implements the line-delimited JSON protocol between the
// referee and a solver process (§6.1). Every message is one JSON object
// terminated by '\n'.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/qreversi/referee/internal/board"
	"github.com/qreversi/referee/internal/movelog"
)

// Move is the wire form of a movelog.Move: [[a,b], r].
type Move struct {
	A, B int
	R    int
}

// FromLogMove converts a movelog.Move to its wire form.
func FromLogMove(m movelog.Move) Move { return Move{A: m.A, B: m.B, R: m.R} }

// MarshalJSON encodes a Move as the two-element array [[a,b], r].
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{[2]int{m.A, m.B}, m.R})
}

// UnmarshalJSON decodes a Move from the two-element array [[a,b], r].
func (m *Move) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("wire: malformed move: %w", err)
	}
	var pair [2]int
	if err := json.Unmarshal(raw[0], &pair); err != nil {
		return fmt.Errorf("wire: malformed move pair: %w", err)
	}
	var r int
	if err := json.Unmarshal(raw[1], &r); err != nil {
		return fmt.Errorf("wire: malformed move resolution: %w", err)
	}
	m.A, m.B, m.R = pair[0], pair[1], r
	return nil
}

// MovesFromLog converts every move in a log to its wire form.
func MovesFromLog(l *movelog.Log) []Move {
	out := make([]Move, l.Len())
	for i := 0; i < l.Len(); i++ {
		out[i] = FromLogMove(l.At(i))
	}
	return out
}

// InitMessage is the referee->solver "init" message.
type InitMessage struct {
	Action  string    `json:"action"`
	Index   int       `json:"index"`
	Names   [2]string `json:"names"`
	Size    [2]int    `json:"size"`
	Board   []string  `json:"board"`
	Moves   []Move    `json:"moves"`
	Black   string    `json:"black"`
	White   string    `json:"white"`
	Quantum string    `json:"quantum"`
	Empty   string    `json:"empty"`
}

// NewInitMessage builds the init message for player index, given both
// player names and the current board/log.
func NewInitMessage(index int, names [2]string, b *board.Board, l *movelog.Log) InitMessage {
	return InitMessage{
		Action:  "init",
		Index:   index,
		Names:   names,
		Size:    [2]int{board.Width, board.Height},
		Board:   b.Chars(),
		Moves:   MovesFromLog(l),
		Black:   board.Black.String(),
		White:   board.White.String(),
		Quantum: board.Quantum.String(),
		Empty:   board.Empty.String(),
	}
}

// PlayMessage is the referee->solver "play" message.
type PlayMessage struct {
	Action string   `json:"action"`
	Board  []string `json:"board"`
	Moves  []Move   `json:"moves"`
}

// NewPlayMessage builds the play message from the current board/log.
func NewPlayMessage(b *board.Board, l *movelog.Log) PlayMessage {
	return PlayMessage{Action: "play", Board: b.Chars(), Moves: MovesFromLog(l)}
}

// SelectMessage is the referee->solver "select" message.
type SelectMessage struct {
	Action       string   `json:"action"`
	Entanglement [2]int   `json:"entanglement"`
	Board        []string `json:"board"`
	Moves        []Move   `json:"moves"`
}

// NewSelectMessage builds the select message offering (a, b) to the
// opposite player.
func NewSelectMessage(a, b int, board_ *board.Board, l *movelog.Log) SelectMessage {
	return SelectMessage{
		Action:       "select",
		Entanglement: [2]int{a, b},
		Board:        board_.Chars(),
		Moves:        MovesFromLog(l),
	}
}

// QuitMessage is the referee->solver "quit" message; its reply is ignored.
type QuitMessage struct {
	Action string `json:"action"`
}

// NewQuitMessage builds the quit message.
func NewQuitMessage() QuitMessage { return QuitMessage{Action: "quit"} }

// PlayReply is a solver's reply to "play": two positions, p1 and p2.
type PlayReply struct {
	Positions [2]int `json:"positions"`
}

// SelectReply is a solver's reply to "select": the chosen position.
type SelectReply struct {
	Select int `json:"select"`
}

// ValidatePosition reports whether pos is a valid cell index on the board.
func ValidatePosition(pos int) error {
	if pos < 0 || pos >= board.NumCells {
		return fmt.Errorf("wire: position %d out of range [0,%d)", pos, board.NumCells)
	}
	return nil
}

// DecodePlayReply parses and range-checks a solver's "play" reply.
func DecodePlayReply(line []byte) (PlayReply, error) {
	var r PlayReply
	if err := json.Unmarshal(line, &r); err != nil {
		return r, fmt.Errorf("wire: malformed play reply: %w", err)
	}
	for _, p := range r.Positions {
		if err := ValidatePosition(p); err != nil {
			return r, err
		}
	}
	return r, nil
}

// DecodeSelectReply parses and range-checks a solver's "select" reply.
func DecodeSelectReply(line []byte) (SelectReply, error) {
	var r SelectReply
	if err := json.Unmarshal(line, &r); err != nil {
		return r, fmt.Errorf("wire: malformed select reply: %w", err)
	}
	if err := ValidatePosition(r.Select); err != nil {
		return r, err
	}
	return r, nil
}
