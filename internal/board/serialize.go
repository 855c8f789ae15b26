package board

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// The text form is a height×width grid of 1-indexed turn numbers, zero for
// empty. Columns are separated by single spaces on encode and by any
// whitespace run on decode; rows by LF. Parity assigns color: odd turns are
// Red, even are Blue.
const (
	colSeparator = " "
	rowSeparator = "\n"
)

// Serialize encodes the game, history included, as a turn-number grid.
func (s *State) Serialize() string {
	grid := make([]int, s.sizeX*s.sizeY)
	for i, c := range s.history {
		grid[s.index(c.X, c.Y)] = i + 1
	}
	var sb strings.Builder
	for y := 0; y < s.sizeY; y++ {
		if y > 0 {
			sb.WriteString(rowSeparator)
		}
		for x := 0; x < s.sizeX; x++ {
			if x > 0 {
				sb.WriteString(colSeparator)
			}
			sb.WriteString(strconv.Itoa(grid[s.index(x, y)]))
		}
	}
	return sb.String()
}

// HashNonHistorical encodes only the final cell configuration, one of
// R, B or _ per cell. Positions reached through different move orders map
// to the same hash, which makes it the transposition-cache key.
func (s *State) HashNonHistorical() string {
	grid := make([]Player, s.sizeX*s.sizeY)
	for i, c := range s.history {
		player := Red
		if i%2 == 1 {
			player = Blue
		}
		grid[s.index(c.X, c.Y)] = player
	}
	var sb strings.Builder
	for y := 0; y < s.sizeY; y++ {
		if y > 0 {
			sb.WriteString(rowSeparator)
		}
		for x := 0; x < s.sizeX; x++ {
			if x > 0 {
				sb.WriteString(colSeparator)
			}
			switch grid[s.index(x, y)] {
			case Red:
				sb.WriteString("R")
			case Blue:
				sb.WriteString("B")
			default:
				sb.WriteString("_")
			}
		}
	}
	return sb.String()
}

// Rows returns the cells as a row-major matrix, for outer layers that want
// the board without the history.
func (s *State) Rows() [][]Player {
	rows := make([][]Player, s.sizeY)
	for y := range rows {
		rows[y] = make([]Player, s.sizeX)
	}
	for i, cell := range s.field {
		c := CoordsOf(s.sizeX, i)
		rows[c.Y][c.X] = cell
	}
	return rows
}

// validateDimensions checks the grid is non-empty and rectangular and
// returns (width, height).
func validateDimensions(text string) (int, int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, 0, errors.Wrap(ErrInvalidDimensions, "empty game")
	}
	rows := strings.Split(trimmed, rowSeparator)
	height := len(rows)
	width := len(strings.Fields(rows[0]))
	if height < MinDim || width < MinDim {
		return 0, 0, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	for _, row := range rows {
		if n := len(strings.Fields(row)); n != width {
			return 0, 0, errors.Wrapf(ErrInvalidDimensions, "expected %d cells in a row, got %d", width, n)
		}
	}
	return width, height, nil
}

type placement struct {
	coords Coords
	player Player
}

// intermediateHistory rebuilds the play order from the turn-number grid.
// It rejects duplicate turn numbers and histories that are not a contiguous
// 1..N prefix.
func intermediateHistory(text string, width, height int) ([]placement, error) {
	slots := make([]*placement, width*height)
	for y, line := range strings.Split(strings.TrimSpace(text), rowSeparator) {
		for x, token := range strings.Fields(line) {
			n, err := strconv.Atoi(token)
			if err != nil || n < 0 {
				return nil, errors.Errorf("invalid cell token %q", token)
			}
			if n == 0 {
				continue
			}
			if n > len(slots) {
				return nil, errors.Wrapf(ErrNonContiguousHistory, "turn %d on a %d-cell board", n, len(slots))
			}
			if slots[n-1] != nil {
				return nil, errors.Wrapf(ErrDuplicateTurn, "turn %d", n)
			}
			player := Red
			if n%2 == 0 {
				player = Blue
			}
			slots[n-1] = &placement{coords: Coords{X: x, Y: y}, player: player}
		}
	}
	var history []placement
	for i, p := range slots {
		if p == nil {
			for _, rest := range slots[i:] {
				if rest != nil {
					return nil, errors.Wrapf(ErrNonContiguousHistory, "gap before turn %d", i+1)
				}
			}
			break
		}
		history = append(history, *p)
	}
	return history, nil
}

// Deserialize rebuilds a State from its text form. Cells are written by
// their literal coordinates — the decoder trusts the board to be reachable
// and does not re-validate the push rules.
func Deserialize(text string) (*State, error) {
	width, height, err := validateDimensions(text)
	if err != nil {
		return nil, err
	}
	history, err := intermediateHistory(text, width, height)
	if err != nil {
		return nil, err
	}
	state := New(width, height)
	for _, p := range history {
		state.history = append(state.history, p.coords)
		state.field[state.index(p.coords.X, p.coords.Y)] = p.player
	}
	state.updateWinner()
	return state, nil
}
