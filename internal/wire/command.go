package wire

import (
	"fmt"
	"unicode/utf8"

	"github.com/hailam/cooldownchess/internal/board"
)

// GameCommandKind identifies a session-level command.
type GameCommandKind uint8

const (
	Join GameCommandKind = iota + 1
	Leave
	Resign
)

func (k GameCommandKind) String() string {
	switch k {
	case Join:
		return "join"
	case Leave:
		return "leave"
	case Resign:
		return "resign"
	default:
		return fmt.Sprintf("game-command(%d)", uint8(k))
	}
}

// GameCommand is a join (with a 3-byte game id), leave or resign.
type GameCommand struct {
	Kind   GameCommandKind
	GameID string
}

// EncodeGameCommand serializes a game command.
func EncodeGameCommand(gc GameCommand) (Command, error) {
	switch gc.Kind {
	case Join:
		if len(gc.GameID) != 3 {
			return Command{}, fmt.Errorf("%w: %q", ErrBadGameID, gc.GameID)
		}
		return Command{TagJoin, gc.GameID[0], gc.GameID[1], gc.GameID[2]}, nil
	case Leave:
		return Command{TagLeave, 0, 0, 0}, nil
	case Resign:
		return Command{TagResign, 0, 0, 0}, nil
	}
	return Command{}, fmt.Errorf("wire: unknown game command %v", gc.Kind)
}

// DecodeGameCommand parses a game command. Trailing bytes of leave and resign are ignored.
func DecodeGameCommand(c Command) (GameCommand, error) {
	switch c[0] {
	case TagJoin:
		id := c[1:4]
		if !utf8.Valid(id) {
			return GameCommand{}, &DecodeError{Offset: 1, Value: c[1], Reason: "game id is not valid UTF-8"}
		}
		return GameCommand{Kind: Join, GameID: string(id)}, nil
	case TagLeave:
		return GameCommand{Kind: Leave}, nil
	case TagResign:
		return GameCommand{Kind: Resign}, nil
	}
	return GameCommand{}, &DecodeError{Offset: 0, Value: c[0], Reason: "unknown game command tag"}
}

// Message is a decoded command: either a move or a game command.
type Message struct {
	IsMove  bool
	Move    board.Move
	Command GameCommand
}

// Decode dispatches on the lead byte.
func Decode(c Command) (Message, error) {
	switch c[0] {
	case TagMove, TagPromotion, TagKingSideCastle, TagQueenSideCastle:
		m, err := DecodeMove(c)
		if err != nil {
			return Message{}, err
		}
		return Message{IsMove: true, Move: m}, nil
	case TagJoin, TagLeave, TagResign:
		gc, err := DecodeGameCommand(c)
		if err != nil {
			return Message{}, err
		}
		return Message{Command: gc}, nil
	}
	return Message{}, &DecodeError{Offset: 0, Value: c[0], Reason: "unknown tag"}
}
