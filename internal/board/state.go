package board

import "github.com/pkg/errors"

// State is the materialized game: board cells plus the move history that
// produced them. The board is logically a value — the search mutates it in
// place through Push/Pop for speed, so a State has exactly one owner at a
// time. Clone before branching.
type State struct {
	sizeX, sizeY int
	field        []Player // row-major, derivable from history; kept for speed
	history      []Coords // landing cell of each move, in play order
	winner       Player   // incrementally maintained by Push, cleared by Pop
}

// New returns an empty state. Dimensions are assumed to be at least MinDim.
func New(sizeX, sizeY int) *State {
	cells := sizeX * sizeY
	return &State{
		sizeX:   sizeX,
		sizeY:   sizeY,
		field:   make([]Player, cells),
		history: make([]Coords, 0, cells),
	}
}

// Clone returns a deep copy safe to mutate independently.
func (s *State) Clone() *State {
	c := &State{
		sizeX:   s.sizeX,
		sizeY:   s.sizeY,
		field:   make([]Player, len(s.field)),
		history: make([]Coords, len(s.history), cap(s.history)),
		winner:  s.winner,
	}
	copy(c.field, s.field)
	copy(c.history, s.history)
	return c
}

// SizeX returns the board width.
func (s *State) SizeX() int { return s.sizeX }

// SizeY returns the board height (the number of rows).
func (s *State) SizeY() int { return s.sizeY }

func (s *State) index(x, y int) int {
	return Index(s.sizeX, x, y)
}

// Cell returns the occupant of (x, y), NoPlayer for empty.
func (s *State) Cell(x, y int) (Player, error) {
	if x < 0 || x >= s.sizeX || y < 0 || y >= s.sizeY {
		return NoPlayer, errors.Wrapf(ErrOutOfBounds, "cell %d %d", x, y)
	}
	return s.field[s.index(x, y)], nil
}

// NextCellTowards returns where a piece pushed into row y from the given
// side would land. The second return is false when the row is full.
func (s *State) NextCellTowards(side Side, y int) (Coords, bool, error) {
	if y < 0 || y >= s.sizeY {
		return Coords{}, false, errors.Wrapf(ErrOutOfBounds, "row %d", y)
	}
	for i := 0; i < s.sizeX; i++ {
		x := i
		if side == Right {
			x = s.sizeX - i - 1
		}
		if s.field[s.index(x, y)] == NoPlayer {
			return Coords{X: x, Y: y}, true, nil
		}
	}
	return Coords{}, false, nil
}

// CurrentDepth is the number of moves played.
func (s *State) CurrentDepth() int { return len(s.history) }

// MaxDepth is the number of cells, the longest possible game.
func (s *State) MaxDepth() int { return s.sizeX * s.sizeY }

// DepthLeft is the number of empty cells remaining.
func (s *State) DepthLeft() int { return s.MaxDepth() - s.CurrentDepth() }

// NextPlayer returns the side to move, or ErrGameOver when the game cannot
// continue.
func (s *State) NextPlayer() (Player, error) {
	if !s.CanContinue() {
		return NoPlayer, errors.WithStack(ErrGameOver)
	}
	if len(s.history) == 0 {
		return FirstPlayer, nil
	}
	last := s.history[len(s.history)-1]
	return s.field[s.index(last.X, last.Y)].Opponent(), nil
}

// LastPlayer returns the player who made the most recent move.
func (s *State) LastPlayer() (Player, error) {
	if len(s.history) == 0 {
		return NoPlayer, errors.WithStack(ErrNoMoves)
	}
	last := s.history[len(s.history)-1]
	return s.field[s.index(last.X, last.Y)], nil
}

// CanContinue reports whether another move can be played.
func (s *State) CanContinue() bool {
	return !s.IsFinished() && !s.IsStalemate()
}

// TryWinner returns the cached winner, NoPlayer if the game is undecided.
func (s *State) TryWinner() Player { return s.winner }

// IsFinished reports whether somebody has won.
func (s *State) IsFinished() bool { return s.winner != NoPlayer }

// IsStalemate reports a full board with no winner.
func (s *State) IsStalemate() bool {
	return !s.IsFinished() && len(s.history) == s.sizeX*s.sizeY
}

// PossibleMoves enumerates the legal moves, middle rows first, alternating
// outward, Left before Right within a row. Central cells join more winning
// lines, so this ordering feeds alpha-beta its likely-best candidates
// early.
func (s *State) PossibleMoves() []Move {
	if s.IsFinished() || s.IsStalemate() {
		return nil
	}
	player, err := s.NextPlayer()
	if err != nil {
		panic(err) // unreachable: the game just validated as continuable
	}
	moves := make([]Move, 0, 2*s.sizeY)
	for i := 0; i < s.sizeY; i++ {
		y := s.sizeY/2 + (1-2*(i%2))*((i+1)/2)
		for _, side := range [...]Side{Left, Right} {
			if s.validateTurn(Turn{Player: player, Height: y, Side: side}) == nil {
				moves = append(moves, Move{Height: y, Side: side})
			}
		}
	}
	return moves
}

// IsTurnWinning reports whether playing the turn would win on the spot.
// Illegal turns are simply not winning.
func (s *State) IsTurnWinning(turn Turn) bool {
	probe := s.Clone()
	if err := probe.Push(turn); err != nil {
		return false
	}
	return probe.TryWinner() != NoPlayer
}

func (s *State) validateTurn(turn Turn) error {
	if !s.CanContinue() {
		return errors.WithStack(ErrGameOver)
	}
	next, err := s.NextPlayer()
	if err != nil {
		return err
	}
	if next != turn.Player {
		return errors.Wrapf(ErrWrongPlayer, "%s to move, got %s", next, turn.Player)
	}
	_, ok, err := s.NextCellTowards(turn.Side, turn.Height)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrRowFull, "can't push %s %d %s", turn.Player, turn.Height, turn.Side)
	}
	return nil
}

// Push validates and applies a turn, then refreshes the winner cache.
func (s *State) Push(turn Turn) error {
	if err := s.validateTurn(turn); err != nil {
		return err
	}
	landing, _, err := s.NextCellTowards(turn.Side, turn.Height)
	if err != nil {
		return err
	}
	s.history = append(s.history, landing)
	s.field[s.index(landing.X, landing.Y)] = turn.Player
	s.updateWinner()
	return nil
}

// PushMove applies a move on behalf of the side to move.
func (s *State) PushMove(m Move) error {
	player, err := s.NextPlayer()
	if err != nil {
		return err
	}
	return s.Push(Turn{Player: player, Height: m.Height, Side: m.Side})
}

// Pop reverts the last move. The winner cache is cleared, not recomputed:
// the search always pops a node whose pre-push cache was empty, which is
// the only caller undoing from a won position.
func (s *State) Pop() error {
	if len(s.history) == 0 {
		return errors.WithStack(ErrNoMoves)
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.field[s.index(last.X, last.Y)] = NoPlayer
	s.winner = NoPlayer
	return nil
}
