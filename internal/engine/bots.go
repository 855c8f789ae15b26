package engine

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/hailam/sidestack/internal/board"
)

// BotID selects an adversary implementation.
type BotID int8

const (
	BotRandom BotID = iota
	BotSmart
)

func (b BotID) String() string {
	if b == BotSmart {
		return "SMART"
	}
	return "RANDOM"
}

// ParseBotID resolves a stored bot id string.
func ParseBotID(s string) (BotID, error) {
	switch strings.ToUpper(s) {
	case "RANDOM":
		return BotRandom, nil
	case "SMART":
		return BotSmart, nil
	}
	return 0, errors.Errorf("unknown bot id %q", s)
}

// Randy plays a uniformly random legal move.
func Randy(game *board.State) (board.Move, bool) {
	moves := game.PossibleMoves()
	if len(moves) == 0 {
		return board.Move{}, false
	}
	return moves[rand.Intn(len(moves))], true
}

// BotMove asks the chosen bot for a move. The smart bot opens with two
// random plies and keeps playing random until the remaining empty cells
// fit under the search depth budget.
func BotMove(id BotID, game *board.State) (board.Move, bool) {
	switch id {
	case BotRandom:
		return Randy(game)
	case BotSmart:
		if _, err := game.NextPlayer(); err != nil {
			return board.Move{}, false
		}
		if game.CurrentDepth() < 2 {
			return Randy(game)
		}
		if game.DepthLeft() > MinmaxDepthRestriction {
			return Randy(game)
		}
		return Minimax(game)
	}
	return board.Move{}, false
}
