// Package engine implements the adversaries that play the game: a random
// bot and a depth-limited negamax with alpha-beta pruning and a
// transposition cache keyed by the position-only board hash.
package engine

import (
	"github.com/rs/zerolog/log"

	"github.com/hailam/sidestack/internal/board"
)

// MinmaxDepthRestriction is the search depth budget. The search is
// unbounded except by depth, so it only runs once the remaining empty
// cells fit under this cap.
const MinmaxDepthRestriction = 15

// nodeResult is what a search node reports upward. A node can have a move
// without a score claim and vice versa; hasScore is false only for
// depth-exhausted nodes, which the parent skips rather than compares.
type nodeResult struct {
	move     board.Move
	hasMove  bool
	score    int
	hasScore bool
}

// Minimax searches the position and returns the best move found, or false
// when the game is over or every line bottomed out unknown. The caller's
// state is never touched; the search branches on a clone.
func Minimax(game *board.State) (board.Move, bool) {
	if _, err := game.NextPlayer(); err != nil {
		return board.Move{}, false
	}
	tt := NewTranspositionTable(DefaultCacheCapacity)
	g := game.Clone()
	window := g.SizeX() * g.SizeY() / 2
	res := negamax(g, tt, -window, window, MinmaxDepthRestriction)
	log.Debug().
		Int("depth", game.CurrentDepth()).
		Int("cached", tt.Len()).
		Bool("found", res.hasMove).
		Msg("minimax-done")
	return res.move, res.hasMove
}

// negamax explores the tree under g with the window [alpha, beta], both
// from the side to move's point of view. Scores are mate-distance scaled:
// quicker wins and later losses score better.
func negamax(g *board.State, tt *TranspositionTable, alpha, beta, depthLeft int) nodeResult {
	if depthLeft == 0 {
		return nodeResult{} // out of budget, no claim either way
	}
	// recomputed here so the caller can't trick us with a wrong depth
	moves := g.PossibleMoves()
	if len(moves) == 0 {
		return nodeResult{hasScore: true}
	}
	if g.IsStalemate() {
		return nodeResult{hasScore: true}
	}
	cells := g.SizeX() * g.SizeY()

	// a winning move ends it right here
	for _, m := range moves {
		if err := g.PushMove(m); err != nil {
			panic(err)
		}
		won := g.TryWinner() != board.NoPlayer
		if err := g.Pop(); err != nil {
			panic(err)
		}
		if won {
			return nodeResult{
				move:     m,
				hasMove:  true,
				score:    (cells + 1 - g.CurrentDepth()) / 2,
				hasScore: true,
			}
		}
	}

	if max := (cells - 1 - g.CurrentDepth()) / 2; beta > max {
		// no point keeping beta above the best still-achievable score
		beta = max
		if alpha >= beta {
			return nodeResult{score: beta, hasScore: true}
		}
	}

	var best board.Move
	hasBest := false
	for _, m := range moves {
		if err := g.PushMove(m); err != nil {
			panic(err)
		}
		hash := g.HashNonHistorical()
		var score int
		var hasScore bool
		if e, ok := tt.Probe(hash); ok {
			score, hasScore = e.Score, e.HasScore
		} else {
			child := negamax(g, tt, -beta, -alpha, depthLeft-1)
			score, hasScore = -child.score, child.hasScore
			tt.Store(hash, TTEntry{Move: m, Score: score, HasScore: hasScore})
		}
		if hasScore && score >= beta {
			if err := g.Pop(); err != nil {
				panic(err)
			}
			return nodeResult{move: m, hasMove: true, score: score, hasScore: true}
		}
		if hasScore && score > alpha {
			alpha = score
			best, hasBest = m, true
		}
		if err := g.Pop(); err != nil {
			panic(err)
		}
	}

	return nodeResult{move: best, hasMove: hasBest, score: alpha, hasScore: true}
}
