// Package console implements an interactive diagnostics shell around a single game.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/hailam/cooldownchess/internal/board"
	"github.com/hailam/cooldownchess/internal/game"
	"github.com/hailam/cooldownchess/internal/movecache"
	"github.com/hailam/cooldownchess/internal/wire"
)

var errNoData = errors.New("no data in line")

const helpText = `commands:
  position startpos|fen <fen> [moves <m>...]   set up a position
  d                                             show the board
  moves [white|black]                           show legal moves
  move <e2e4|e7e8q|O-O <color>|hex:<8 hex>>     play a move
  tick [n|duration]                             advance cooldowns (default one tick)
  live on|off                                   tick in real time
  checks <color>                                count attacks on a king
  encode <move>                                 show the 4-byte wire command
  decode <8 hex>                                decode a wire command
  fen                                           print the position as FEN
  history                                       list played moves
  quit                                          leave`

// Console holds the current game and writes results to out.
type Console struct {
	out          io.Writer
	cache        *movecache.Cache
	tickInterval time.Duration
	historyFile  string

	game     *game.Game
	stopLive context.CancelFunc
}

// New creates a console starting from start.
func New(out io.Writer, start board.Board, cache *movecache.Cache, tickInterval time.Duration, historyFile string) *Console {
	return &Console{
		out:          out,
		cache:        cache,
		tickInterval: tickInterval,
		historyFile:  historyFile,
		game:         game.New("console", start, cache),
	}
}

// Game returns the game the console is driving.
func (c *Console) Game() *game.Game {
	return c.game
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Loop reads commands until quit, EOF or an interrupt on an empty line.
func (c *Console) Loop() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "cooldownchess> ",
		HistoryFile:     c.historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer l.Close()
	defer c.setLive(false)

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}

		quit, err := c.Execute(line)
		if err != nil {
			if !errors.Is(err, errNoData) {
				log.Error().Err(err).Msg("")
			}
			continue
		}
		if quit {
			log.Debug().Msg("Exiting readline loop...")
			return nil
		}
	}
}

// Execute runs one command line. It reports true when the console should exit.
func (c *Console) Execute(line string) (bool, error) {
	fields, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return false, errNoData
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		c.setLive(false)
		return true, nil
	case "help":
		c.println(helpText)
	case "position":
		return false, c.handlePosition(args)
	case "d":
		snap := c.game.Snapshot()
		c.println(snap.String())
	case "moves":
		return false, c.handleMoves(args)
	case "move":
		return false, c.handleMove(args)
	case "tick":
		return false, c.handleTick(args)
	case "live":
		return false, c.handleLive(args)
	case "checks":
		return false, c.handleChecks(args)
	case "encode":
		return false, c.handleEncode(args)
	case "decode":
		return false, c.handleDecode(args)
	case "fen":
		snap := c.game.Snapshot()
		c.println(snap.ToFEN())
	case "history":
		for i, m := range c.game.History() {
			c.printf("%3d. %s\n", i+1, m)
		}
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// Listed moves are applied without legality or cooldown checks.
func (c *Console) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position needs startpos or fen")
	}

	setup, moves := args, []string(nil)
	for i, arg := range args {
		if arg == "moves" {
			setup, moves = args[:i], args[i+1:]
			break
		}
	}

	if len(setup) == 0 {
		return errors.New("position needs startpos or fen")
	}

	var b board.Board
	switch setup[0] {
	case "startpos":
		b = board.Standard()
	case "fen":
		parsed, err := board.ParseFEN(strings.Join(setup[1:], " "))
		if err != nil {
			return fmt.Errorf("invalid FEN: %w", err)
		}
		b = parsed
	default:
		return fmt.Errorf("unknown position type %q", setup[0])
	}

	for _, s := range moves {
		m, err := board.ParseMove(s, &b)
		if err != nil {
			return fmt.Errorf("invalid move %s: %w", s, err)
		}
		b.ProcessMove(m)
	}

	live := c.stopLive != nil
	c.setLive(false)
	c.game = game.New("console", b, c.cache)
	c.setLive(live)
	return nil
}

func (c *Console) handleMoves(args []string) error {
	snap := c.game.Snapshot()
	gen := board.NewMoveGen(&snap)

	var moves []board.Move
	if len(args) == 0 {
		moves = gen.PossibleMoves()
	} else {
		color, ok := board.ParseColor(args[0])
		if !ok {
			return fmt.Errorf("unknown color %q", args[0])
		}
		moves = gen.PossibleMovesForColor(color)
	}

	c.println(board.RenderTargets(&snap, moves))
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	c.printf("%d moves: %s\n", len(moves), strings.Join(names, ", "))
	return nil
}

// parseMoveArgs accepts coordinate notation, "O-O <color>" and wire commands as hex.
func (c *Console) parseMoveArgs(args []string) (board.Move, error) {
	if len(args) == 0 {
		return board.Move{}, errors.New("missing move")
	}
	s := args[0]

	switch {
	case strings.HasPrefix(s, "O-") || strings.HasPrefix(s, "0-"):
		if len(args) < 2 {
			return board.Move{}, errors.New("castling needs a color")
		}
		color, ok := board.ParseColor(args[1])
		if !ok {
			return board.Move{}, fmt.Errorf("unknown color %q", args[1])
		}
		return board.ParseCastle(s, color)

	case strings.HasPrefix(s, "hex:"):
		cmd, err := wire.ParseCommand(strings.TrimPrefix(s, "hex:"))
		if err != nil {
			return board.Move{}, err
		}
		return wire.DecodeMove(cmd)
	}

	snap := c.game.Snapshot()
	return board.ParseMove(s, &snap)
}

func (c *Console) handleMove(args []string) error {
	m, err := c.parseMoveArgs(args)
	if err != nil {
		return err
	}
	if err := c.game.Apply(m); err != nil {
		return err
	}
	c.println("ok", m.String())
	return nil
}

// handleTick accepts a tick count or a duration ("500ms").
func (c *Console) handleTick(args []string) error {
	n := 1
	if len(args) > 0 {
		if count, err := strconv.Atoi(args[0]); err == nil {
			n = count
		} else if d, err := time.ParseDuration(args[0]); err == nil {
			n = board.TicksUntilReady(d)
		} else {
			return fmt.Errorf("tick wants a count or a duration, got %q", args[0])
		}
	}
	if n < 0 {
		return fmt.Errorf("negative tick count %d", n)
	}
	for range n {
		c.game.Tick()
	}
	c.printf("ticked %d (%v)\n", n, time.Duration(n)*board.TickRate)
	return nil
}

func (c *Console) handleLive(args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return errors.New("live wants on or off")
	}
	c.setLive(args[0] == "on")
	c.println("live", args[0])
	return nil
}

// setLive starts or stops real-time ticking of the current game.
func (c *Console) setLive(on bool) {
	if c.stopLive != nil {
		c.stopLive()
		c.stopLive = nil
	}
	if !on {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.stopLive = cancel
	g := c.game
	go func() {
		if err := g.Run(ctx, c.tickInterval); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("live ticking stopped")
		}
	}()
}

func (c *Console) handleChecks(args []string) error {
	if len(args) != 1 {
		return errors.New("checks wants a color")
	}
	color, ok := board.ParseColor(args[0])
	if !ok {
		return fmt.Errorf("unknown color %q", args[0])
	}
	c.printf("%s king attacked by %d moves\n", color, c.game.Checks(color))
	return nil
}

func (c *Console) handleEncode(args []string) error {
	m, err := c.parseMoveArgs(args)
	if err != nil {
		return err
	}
	c.println(wire.EncodeMove(m).String())
	return nil
}

func (c *Console) handleDecode(args []string) error {
	if len(args) != 1 {
		return errors.New("decode wants one command")
	}
	cmd, err := wire.ParseCommand(args[0])
	if err != nil {
		return err
	}
	msg, err := wire.Decode(cmd)
	if err != nil {
		return err
	}
	if msg.IsMove {
		c.println(msg.Move.Kind.String(), msg.Move.String())
		return nil
	}
	if msg.Command.Kind == wire.Join {
		c.println(msg.Command.Kind.String(), msg.Command.GameID)
		return nil
	}
	c.println(msg.Command.Kind.String())
	return nil
}
