// Command sidestack is a thin CLI over the engine: it reads a serialized
// board, lets a bot move, and prints the move and the resulting board.
// With -selfplay it runs bot-vs-bot games on independent boards
// concurrently.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/sidestack/internal/board"
	"github.com/hailam/sidestack/internal/config"
	"github.com/hailam/sidestack/internal/engine"
	"github.com/hailam/sidestack/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		botName    = flag.String("bot", "", "bot to play: RANDOM or SMART (default from config)")
		boardPath  = flag.String("board", "-", "board file to read, - for stdin")
		selfplay   = flag.Int("selfplay", 0, "play N bot-vs-bot games concurrently instead")
		persist    = flag.Bool("persist", false, "store finished selfplay games")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	opts, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if lvl, err := zerolog.ParseLevel(opts.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	name := opts.DefaultBot
	if *botName != "" {
		name = *botName
	}
	botID, err := engine.ParseBotID(name)
	if err != nil {
		log.Fatal().Err(err).Msg("bot")
	}

	if *selfplay > 0 {
		if err := runSelfplay(opts, botID, *selfplay, *persist); err != nil {
			log.Fatal().Err(err).Msg("selfplay")
		}
		return
	}

	if err := runMove(botID, *boardPath); err != nil {
		log.Fatal().Err(err).Msg("move")
	}
}

// runMove reads one board, asks the bot for a move, and prints the move
// and the updated board.
func runMove(botID engine.BotID, boardPath string) error {
	var text []byte
	var err error
	if boardPath == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(boardPath)
	}
	if err != nil {
		return err
	}

	state, err := board.Deserialize(string(text))
	if err != nil {
		return err
	}
	m, ok := engine.BotMove(botID, state)
	if !ok {
		fmt.Println("no move")
		return nil
	}
	if err := state.PushMove(m); err != nil {
		return err
	}
	fmt.Printf("%d %s\n%s\n", m.Height, m.Side, state.Serialize())
	return nil
}

// runSelfplay plays n independent games to completion, one goroutine per
// game. Each game owns its own State; only distinct boards run in
// parallel.
func runSelfplay(opts config.Options, botID engine.BotID, n int, persist bool) error {
	var store *storage.Store
	if persist {
		var err error
		if opts.DataDir != "" {
			store, err = storage.OpenAt(opts.DataDir)
		} else {
			store, err = storage.Open()
		}
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var g errgroup.Group
	for i := 0; i < n; i++ {
		game := i
		g.Go(func() error {
			state := board.New(opts.BoardWidth, opts.BoardHeight)
			for state.CanContinue() {
				m, ok := engine.BotMove(botID, state)
				if !ok {
					break
				}
				if err := state.PushMove(m); err != nil {
					return err
				}
			}
			winner := state.TryWinner()
			log.Info().
				Int("game", game).
				Int("moves", state.CurrentDepth()).
				Stringer("winner", winner).
				Bool("stalemate", state.IsStalemate()).
				Msg("selfplay-done")
			if store != nil {
				rec, err := store.CreateGame(botID.String())
				if err != nil {
					return err
				}
				return store.UpdateState(rec.ID, state.Serialize())
			}
			return nil
		})
	}
	return g.Wait()
}
