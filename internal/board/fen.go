package board

import (
	"fmt"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses piece placement and castling rights from a FEN string. Side to move, en
// passant and the move counters are accepted but ignored; any trailing fields are ignored too.
// Every piece starts ready to move.
func ParseFEN(fen string) (Board, error) {
	return parseFEN(fen, true)
}

// FromFEN is the lenient form of ParseFEN: unrecognized characters are skipped and a
// structurally malformed string yields an empty board instead of an error.
func FromFEN(fen string) Board {
	b, err := parseFEN(fen, false)
	if err != nil {
		return Empty()
	}
	return b
}

func parseFEN(fen string, strict bool) (Board, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return Board{}, fmt.Errorf("invalid FEN: empty string")
	}

	var b Board

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(&b, parts[0], strict); err != nil {
		return Board{}, err
	}

	// Field 1 is side to move. Turns do not exist in cooldown chess.
	if strict && len(parts) > 1 && parts[1] != "w" && parts[1] != "b" {
		return Board{}, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2)
	if len(parts) > 2 {
		if err := parseCastlingRights(&b, parts[2], strict); err != nil {
			return Board{}, err
		}
	}

	return b, nil
}

func parsePiecePlacement(b *Board, placement string, strict bool) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid FEN: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}

			p, ok := PieceFromChar(ch)
			if !ok {
				if strict {
					return fmt.Errorf("invalid piece character: %c", ch)
				}
				continue
			}
			if file > 7 {
				return fmt.Errorf("invalid FEN: rank %d too long", rank+1)
			}
			b.SetPieceAt(NewCoord(file, rank), p)
			file++
		}

		if file > 8 || (strict && file != 8) {
			return fmt.Errorf("invalid FEN: rank %d has %d squares", rank+1, file)
		}
	}

	return nil
}

func parseCastlingRights(b *Board, s string, strict bool) error {
	b.Castling = NoCastling
	if s == "-" {
		return nil
	}

	for _, ch := range s {
		switch ch {
		case 'K':
			b.Castling |= WhiteKingSideCastle
		case 'Q':
			b.Castling |= WhiteQueenSideCastle
		case 'k':
			b.Castling |= BlackKingSideCastle
		case 'q':
			b.Castling |= BlackQueenSideCastle
		default:
			if strict {
				return fmt.Errorf("invalid castling character: %c", ch)
			}
		}
	}

	return nil
}

// ToFEN returns the FEN string for the board. Side to move is always "w" and the move
// counters are fixed; cooldowns are not represented.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteString(" w ")
	sb.WriteString(b.Castling.String())
	sb.WriteString(" - 0 1")

	return sb.String()
}
