package engine

import "github.com/hailam/sidestack/internal/board"

// Expectimax scores a whole board for the given player by sliding
// WinLen-wide windows over each line family's cells. A window holding both
// colors is dead and scores zero; a homogenous window scores by how close
// it is to a win, with three-of-four weighted far above the rest. The
// total is clamped to ±(cells+1).
//
// Reserved as a move-ordering primitive; the search does not call it yet.
func Expectimax(game *board.State, player board.Player) int {
	width, height := game.SizeX(), game.SizeY()
	total := 0
	for _, dir := range board.Directions {
		var seq []board.Coords
		for _, line := range dir.Lines(width, height) {
			seq = append(seq, line...)
		}
		for i := 0; i+board.WinLen <= len(seq); i++ {
			total += windowScore(game, player, seq[i:i+board.WinLen])
		}
	}
	limit := width*height + 1
	if total > limit {
		return limit
	}
	if total < -limit {
		return -limit
	}
	return total
}

func windowScore(game *board.State, player board.Player, window []board.Coords) int {
	occupied := 0
	owner := board.NoPlayer
	for _, c := range window {
		cell, err := game.Cell(c.X, c.Y)
		if err != nil {
			panic(err)
		}
		if cell == board.NoPlayer {
			continue
		}
		if owner != board.NoPlayer && owner != cell {
			return 0
		}
		if owner == board.NoPlayer {
			owner = cell
		}
		occupied++
	}
	if owner == board.NoPlayer {
		return 0
	}
	signum := 1
	if player != owner {
		signum = -1
	}
	// one short of a win outweighs any pile of pairs
	switch occupied {
	case 3:
		return 30 * signum
	case 2:
		return 4 * signum
	}
	return occupied * signum
}
