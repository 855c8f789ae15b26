// Package board implements the side-push four-in-a-row game: pieces are
// injected into a chosen row from its left or right edge and slide to the
// first empty cell. It carries the rules, winner detection and the textual
// serialization of a game.
package board

import "github.com/pkg/errors"

// WinLen is the length of a winning run.
const WinLen = 4

// Default board dimensions handed out when a caller asks for an empty game.
const (
	DefaultWidth  = 7
	DefaultHeight = 7
)

// MinDim is the smallest accepted board dimension.
const MinDim = 1

// Error kinds returned by the rules and the serializer. Callers match them
// with errors.Is; the concrete values carry wrapped context.
var (
	ErrGameOver             = errors.New("game is over")
	ErrWrongPlayer          = errors.New("wrong player")
	ErrOutOfBounds          = errors.New("out of bounds")
	ErrRowFull              = errors.New("row full")
	ErrNoMoves              = errors.New("no moves to pop")
	ErrInvalidDimensions    = errors.New("invalid dimensions")
	ErrDuplicateTurn        = errors.New("duplicate turn")
	ErrNonContiguousHistory = errors.New("non-contiguous history")
)

// Player is a cell owner or a side to move. NoPlayer doubles as the empty
// cell and the "no winner" value.
type Player int8

const (
	NoPlayer Player = iota
	Red
	Blue
)

// FirstPlayer moves first. Red, like White in chess.
const FirstPlayer = Red

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	}
	return "None"
}

// Side is the edge a piece is injected from.
type Side int8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "Right"
	}
	return "Left"
}

// Move selects a row (the historical name is "height") and the side to push
// from.
type Move struct {
	Height int
	Side   Side
}

// Turn is a Move bound to the player making it.
type Turn struct {
	Player Player
	Height int
	Side   Side
}

// Coords is a cell position, x along a row, y selecting the row.
type Coords struct {
	X, Y int
}
