// Package wire encodes moves and game commands into the fixed 4-byte command format.
//
// Byte 0 is a tag. Moves use tags 0-3:
//
//	0x00 plain       from, to, 0
//	0x01 promotion   from, to, piece
//	0x02 O-O         color, 0, 0
//	0x03 O-O-O       color, 0, 0
//
// Squares are rank*8+file. A piece byte holds the kind in the high nibble and the color in
// bit 0 (1 = black). Game commands use tags 0x10 (join), 0x20 (leave) and 0x30 (resign).
package wire

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hailam/cooldownchess/internal/board"
)

// Command is one encoded message.
type Command [4]byte

// Lead bytes.
const (
	TagMove            byte = 0x00
	TagPromotion       byte = 0x01
	TagKingSideCastle  byte = 0x02
	TagQueenSideCastle byte = 0x03
	TagJoin            byte = 0x10
	TagLeave           byte = 0x20
	TagResign          byte = 0x30
)

const (
	colorBlack byte = 0b0000_0001

	piecePawn   byte = 0b0000_0000
	pieceKnight byte = 0b0001_0000
	pieceBishop byte = 0b0010_0000
	pieceRook   byte = 0b0011_0000
	pieceQueen  byte = 0b0100_0000
	pieceKing   byte = 0b0101_0000
)

var kindCodes = map[board.PieceKind]byte{
	board.Pawn:   piecePawn,
	board.Knight: pieceKnight,
	board.Bishop: pieceBishop,
	board.Rook:   pieceRook,
	board.Queen:  pieceQueen,
	board.King:   pieceKing,
}

var codeKinds = [...]board.PieceKind{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King}

// String returns the command as 8 hex digits.
func (c Command) String() string {
	return hex.EncodeToString(c[:])
}

// ParseCommand reads a command written as 8 hex digits, optionally prefixed by "0x".
func ParseCommand(s string) (Command, error) {
	var c Command
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil {
		return c, fmt.Errorf("parse command %q: %w", s, err)
	}
	if len(raw) != len(c) {
		return c, fmt.Errorf("parse command %q: need %d bytes, got %d", s, len(c), len(raw))
	}
	copy(c[:], raw)
	return c, nil
}

func encodeColor(c board.Color) byte {
	if c == board.Black {
		return colorBlack
	}
	return 0
}

func decodeColor(b byte) board.Color {
	if b&colorBlack != 0 {
		return board.Black
	}
	return board.White
}

// EncodePiece returns the piece byte. Cooldown is not transmitted.
func EncodePiece(p board.Piece) byte {
	code, ok := kindCodes[p.Kind]
	if !ok {
		panic(fmt.Sprintf("wire: cannot encode %v", p.Kind))
	}
	return code | encodeColor(p.Color)
}

// DecodePiece reads a piece byte. The piece comes back with its standard cooldown.
func DecodePiece(b byte) (board.Piece, error) {
	return decodePieceAt(b, 3)
}

func decodePieceAt(b byte, offset int) (board.Piece, error) {
	if b&0b0000_1110 != 0 {
		return board.Piece{}, &DecodeError{Offset: offset, Value: b, Reason: "reserved piece bits set"}
	}
	code := int(b >> 4)
	if code >= len(codeKinds) {
		return board.Piece{}, &DecodeError{Offset: offset, Value: b, Reason: "unknown piece kind"}
	}
	return board.NewPiece(codeKinds[code], decodeColor(b)).Reset(), nil
}

func encodeCoord(c board.Coord) byte {
	if !c.IsValid() {
		panic(fmt.Sprintf("wire: cannot encode off-board coordinate %+v", c))
	}
	return c.Index()
}

func decodeCoordAt(b byte, offset int) (board.Coord, error) {
	if b > 63 {
		return board.Coord{}, &DecodeError{Offset: offset, Value: b, Reason: "square out of range"}
	}
	return board.CoordFromIndex(b), nil
}

// EncodeMove serializes a move. Unused trailing bytes are zero.
func EncodeMove(m board.Move) Command {
	switch m.Kind {
	case board.PlainMove:
		return Command{TagMove, encodeCoord(m.From), encodeCoord(m.To), 0}
	case board.PromotionMove:
		return Command{TagPromotion, encodeCoord(m.From), encodeCoord(m.To), EncodePiece(m.Promote)}
	case board.KingSideCastle:
		return Command{TagKingSideCastle, encodeColor(m.Color), 0, 0}
	case board.QueenSideCastle:
		return Command{TagQueenSideCastle, encodeColor(m.Color), 0, 0}
	default:
		panic(fmt.Sprintf("wire: unhandled %v", m.Kind))
	}
}

// DecodeMove parses a move command. Any tag outside 0-3 is a *DecodeError.
func DecodeMove(c Command) (board.Move, error) {
	switch c[0] {
	case TagMove, TagPromotion:
		from, err := decodeCoordAt(c[1], 1)
		if err != nil {
			return board.Move{}, err
		}
		to, err := decodeCoordAt(c[2], 2)
		if err != nil {
			return board.Move{}, err
		}
		if c[0] == TagMove {
			return board.NewMove(from, to), nil
		}
		p, err := decodePieceAt(c[3], 3)
		if err != nil {
			return board.Move{}, err
		}
		return board.NewPromotion(from, to, p), nil

	case TagKingSideCastle:
		return board.NewKingSideCastle(decodeColor(c[1])), nil
	case TagQueenSideCastle:
		return board.NewQueenSideCastle(decodeColor(c[1])), nil
	}
	return board.Move{}, &DecodeError{Offset: 0, Value: c[0], Reason: "unknown move tag"}
}
