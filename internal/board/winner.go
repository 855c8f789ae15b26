package board

// A winning run can only be created by the move that completes it, so the
// winner scan starts at the last move and grows a window outward along each
// of the four line directions. Cost is O(WinLen) per push, independent of
// board size.

type delta struct {
	dx, dy int
}

// Paired opposite steps: horizontal, vertical, both diagonals.
var runDirections = [4][2]delta{
	{{-1, 0}, {1, 0}},
	{{0, -1}, {0, 1}},
	{{-1, 1}, {1, -1}},
	{{-1, -1}, {1, 1}},
}

func (s *State) updateWinner() {
	s.winner = s.scanWinner()
}

func (s *State) scanWinner() Player {
	if len(s.history) == 0 {
		return NoPlayer
	}
	last := s.history[len(s.history)-1]
	player := s.field[s.index(last.X, last.Y)]
	for _, dir := range runDirections {
		run := 1
		low, high := last, last
		for run < WinLen {
			if next, ok := s.step(low, dir[0]); ok && s.field[s.index(next.X, next.Y)] == player {
				low = next
				run++
				continue
			}
			if next, ok := s.step(high, dir[1]); ok && s.field[s.index(next.X, next.Y)] == player {
				high = next
				run++
				continue
			}
			break
		}
		if run == WinLen {
			return player
		}
	}
	return NoPlayer
}

func (s *State) step(c Coords, d delta) (Coords, bool) {
	x, y := c.X+d.dx, c.Y+d.dy
	if x < 0 || x >= s.sizeX || y < 0 || y >= s.sizeY {
		return Coords{}, false
	}
	return Coords{X: x, Y: y}, true
}
