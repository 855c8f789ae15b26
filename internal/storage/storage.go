// Package storage persists games in a local BadgerDB key-value store. The
// engine itself never touches it; callers hand serialized boards in and
// out.
package storage

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hailam/sidestack/internal/board"
	"github.com/hailam/sidestack/internal/engine"
)

const gameKeyPrefix = "game:"

// ErrGameNotFound is returned when no game exists under the requested id.
var ErrGameNotFound = errors.New("game not found")

// EmptyState is the serialized default board handed to new games.
var EmptyState = func() string {
	return board.New(board.DefaultWidth, board.DefaultHeight).Serialize()
}()

// Game is one stored game: the serialized board plus the seats around it.
// Seat tokens identify human players; a nil seat is unclaimed.
type Game struct {
	ID         uuid.UUID  `json:"id"`
	State      string     `json:"state"`
	PlayerRed  *uuid.UUID `json:"player_red,omitempty"`
	PlayerBlue *uuid.UUID `json:"player_blue,omitempty"`
	BotID      string     `json:"bot_id,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewGame returns a fresh game on the default board.
func NewGame() *Game {
	return &Game{
		ID:        uuid.New(),
		State:     EmptyState,
		UpdatedAt: time.Now(),
	}
}

// Store wraps BadgerDB for persistent game storage.
type Store struct {
	db *badger.DB
}

// Open opens the store in the platform data directory.
func Open() (*Store, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the store in the given directory, creating it on first use.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening game store at %s", dir)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id uuid.UUID) []byte {
	return []byte(gameKeyPrefix + id.String())
}

// CreateGame persists a new game and returns it.
func (s *Store) CreateGame(botID string) (*Game, error) {
	g := NewGame()
	g.BotID = botID
	if err := s.putGame(g); err != nil {
		return nil, err
	}
	log.Debug().Str("game", g.ID.String()).Str("bot", botID).Msg("game-created")
	return g, nil
}

// Game loads a stored game by id.
func (s *Store) Game(id uuid.UUID) (*Game, error) {
	var g Game
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(ErrGameNotFound, "%s", id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateState replaces a game's serialized board.
func (s *Store) UpdateState(id uuid.UUID, state string) error {
	g, err := s.Game(id)
	if err != nil {
		return err
	}
	g.State = state
	return s.putGame(g)
}

// ClaimSeat assigns a player token to one color's seat.
func (s *Store) ClaimSeat(id uuid.UUID, color board.Player, token uuid.UUID) error {
	g, err := s.Game(id)
	if err != nil {
		return err
	}
	switch color {
	case board.Red:
		g.PlayerRed = &token
	case board.Blue:
		g.PlayerBlue = &token
	default:
		return errors.Errorf("no seat for %s", color)
	}
	return s.putGame(g)
}

// ListGames returns every stored game.
func (s *Store) ListGames() ([]*Game, error) {
	var games []*Game
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g Game
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			})
			if err != nil {
				return err
			}
			games = append(games, &g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) putGame(g *Game) error {
	g.UpdatedAt = time.Now()
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(g.ID), data)
	})
}

// BotCanMove reports whether the game's bot is the one to move: a bot id
// is set, exactly one human seat is claimed, and the seat of the side to
// move is unclaimed.
func BotCanMove(g *Game) bool {
	if strings.TrimSpace(g.BotID) == "" {
		return false
	}
	claimed := 0
	if g.PlayerRed != nil {
		claimed++
	}
	if g.PlayerBlue != nil {
		claimed++
	}
	if claimed != 1 {
		return false
	}
	state, err := board.Deserialize(g.State)
	if err != nil {
		return false
	}
	player, err := state.NextPlayer()
	if err != nil {
		return false
	}
	switch player {
	case board.Red:
		return g.PlayerRed == nil
	case board.Blue:
		return g.PlayerBlue == nil
	}
	return false
}

// TryBot lets the game's bot move if it is its turn, persisting the new
// state. Returns true when a move was made.
func (s *Store) TryBot(id uuid.UUID) (bool, error) {
	g, err := s.Game(id)
	if err != nil {
		return false, err
	}
	if !BotCanMove(g) {
		return false, nil
	}
	botID, err := engine.ParseBotID(g.BotID)
	if err != nil {
		return false, err
	}
	state, err := board.Deserialize(g.State)
	if err != nil {
		return false, err
	}
	m, ok := engine.BotMove(botID, state)
	if !ok {
		return false, nil
	}
	if err := state.PushMove(m); err != nil {
		return false, err
	}
	if err := s.UpdateState(id, state.Serialize()); err != nil {
		return false, err
	}
	log.Debug().
		Str("game", g.ID.String()).
		Int("height", m.Height).
		Stringer("side", m.Side).
		Msg("bot-moved")
	return true, nil
}
