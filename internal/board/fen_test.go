package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestParseFENStart(t *testing.T) {
	is := is.New(t)
	b, err := ParseFEN(StartFEN)
	is.NoErr(err)

	std := Standard()
	is.Equal(b, std)
	is.Equal(b.ToFEN(), StartFEN)
}

func TestParseFENCastle(t *testing.T) {
	is := is.New(t)
	b, err := ParseFEN("r1bk3r/p2pBpNp/n4n2/1p1NP2P/6P1/3P4/P1P1K3/q5b1 w qQ - 0 0")
	is.NoErr(err)

	p, ok := b.PieceAt(sq("a8"))
	is.True(ok)
	is.Equal(p, NewPiece(Rook, Black))

	p, ok = b.PieceAt(sq("a1"))
	is.True(ok)
	is.Equal(p, NewPiece(Queen, Black))

	p, ok = b.PieceAt(sq("e2"))
	is.True(ok)
	is.Equal(p, NewPiece(King, White))

	is.Equal(b.Castling, WhiteQueenSideCastle|BlackQueenSideCastle)
	is.True(!b.Castling.CanCastle(White, true))
	is.True(b.Castling.CanCastle(White, false))
	is.True(!b.Castling.CanCastle(Black, true))
	is.True(b.Castling.CanCastle(Black, false))
}

func TestParseFENCastlingTokens(t *testing.T) {
	tests := []struct {
		token string
		want  CastlingRights
	}{
		{"qkQK", AllCastling},
		{"KQkq", AllCastling},
		{"-", NoCastling},
		{"Kq", WhiteKingSideCastle | BlackQueenSideCastle},
	}
	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			b, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w " + tc.token + " - 0 1")
			if err != nil {
				t.Fatal(err)
			}
			if b.Castling != tc.want {
				t.Errorf("castling = %s, want %s", b.Castling, tc.want)
			}
		})
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"rank too long", "9/8/8/8/8/8/8/8 w - - 0 1"},
		{"piece overflow", "8p/8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "7/8/8/8/8/8/8/8 w - - 0 1"},
		{"bad piece", "rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad side", "8/8/8/8/8/8/8/8 x - - 0 1"},
		{"bad castling", "8/8/8/8/8/8/8/8 w KX - 0 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFEN(tc.fen); err == nil {
				t.Errorf("ParseFEN(%q) succeeded, want error", tc.fen)
			}
		})
	}
}

func TestFromFENLenient(t *testing.T) {
	is := is.New(t)

	// Unknown characters are skipped rather than rejected.
	b := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxkq - 0 1")
	is.Equal(b.PieceCount(), 32)
	is.Equal(b.Castling, AllCastling)

	// Placement only.
	b = FromFEN("4k3/8/8/8/8/8/8/4K3")
	is.Equal(b.PieceCount(), 2)
	is.Equal(b.Castling, NoCastling)

	// Malformed input yields an empty board.
	b = FromFEN("not a fen")
	is.Equal(b, Empty())
	b = FromFEN("")
	is.Equal(b, Empty())
}

func TestFENPiecesAreReady(t *testing.T) {
	is := is.New(t)
	b := FromFEN(StartFEN)
	b.forEach(func(_ Coord, p Piece) {
		is.True(p.Ready())
	})
}

func TestToFEN(t *testing.T) {
	tests := []string{
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"r1bk3r/p2pBpNp/n4n2/1p1NP2P/6P1/3P4/P1P1K3/q5b1 w Qq - 0 1",
	}
	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			b, err := ParseFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.ToFEN(); got != fen {
				t.Errorf("ToFEN() = %q, want %q", got, fen)
			}
		})
	}
}
