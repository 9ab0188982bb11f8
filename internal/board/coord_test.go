package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in   string
		want Coord
		ok   bool
	}{
		{"a1", Coord{0, 0}, true},
		{"h8", Coord{7, 7}, true},
		{"e4", Coord{4, 3}, true},
		{"i1", Coord{}, false},
		{"a9", Coord{}, false},
		{"a0", Coord{}, false},
		{"e", Coord{}, false},
		{"e44", Coord{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCoord(tc.in)
			if !tc.ok {
				if !errors.Is(err, ErrInvalidCoord) {
					t.Errorf("ParseCoord(%q) error = %v, want ErrInvalidCoord", tc.in, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseCoord(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
			if got.String() != tc.in {
				t.Errorf("String() = %q, want %q", got.String(), tc.in)
			}
		})
	}
}

func TestCoordValidity(t *testing.T) {
	is := is.New(t)
	is.True(NewCoord(0, 0).IsValid())
	is.True(NewCoord(7, 7).IsValid())
	is.True(!NewCoord(-1, 0).IsValid())
	is.True(!NewCoord(0, 8).IsValid())
	is.True(!NewCoord(7, 7).Offset(1, 0).IsValid())
	is.Equal(NewCoord(4, 1).Offset(-1, 2), NewCoord(3, 3))
}

func TestCoordIndex(t *testing.T) {
	is := is.New(t)
	is.Equal(sq("a1").Index(), uint8(0))
	is.Equal(sq("c5").Index(), uint8(34))
	is.Equal(sq("h8").Index(), uint8(63))
	for i := uint8(0); i < 64; i++ {
		is.Equal(CoordFromIndex(i).Index(), i)
	}
}

func TestCoordStringPanicsOffBoard(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	_ = NewCoord(8, 0).String()
}

func TestMoveEqual(t *testing.T) {
	is := is.New(t)
	a := NewPromotion(sq("d7"), sq("d8"), NewPiece(Rook, White))
	b := NewPromotion(sq("d7"), sq("d8"), NewPiece(Rook, White).Reset())

	is.True(a.Equal(b))
	is.True(!a.Equal(NewPromotion(sq("d7"), sq("d8"), NewPiece(Queen, White))))
	is.True(!a.Equal(NewMove(sq("d7"), sq("d8"))))
	is.True(NewKingSideCastle(Black).Equal(NewKingSideCastle(Black)))
	is.True(!NewKingSideCastle(Black).Equal(NewKingSideCastle(White)))
	is.True(!NewKingSideCastle(Black).Equal(NewQueenSideCastle(Black)))
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{NewMove(sq("e2"), sq("e4")), "e2e4"},
		{NewPromotion(sq("a2"), sq("a1"), NewPiece(Queen, Black)), "a2a1q"},
		{NewKingSideCastle(White), "white O-O"},
		{NewQueenSideCastle(Black), "black O-O-O"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoveTarget(t *testing.T) {
	is := is.New(t)
	to, ok := NewMove(sq("e2"), sq("e4")).Target()
	is.True(ok)
	is.Equal(to, sq("e4"))

	_, ok = NewQueenSideCastle(White).Target()
	is.True(!ok)
}

func TestUnknownMoveKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Move{Kind: MoveKind(9)}.Target()
}

func TestParseMove(t *testing.T) {
	b := FromFEN("r3k2r/1P6/8/8/8/8/8/R3K2R w KQkq - 0 1")

	tests := []struct {
		in   string
		want Move
	}{
		{"a1a5", NewMove(sq("a1"), sq("a5"))},
		{"e1g1", NewKingSideCastle(White)},
		{"e1c1", NewQueenSideCastle(White)},
		{"e8c8", NewQueenSideCastle(Black)},
		{"e1f1", NewMove(sq("e1"), sq("f1"))},
		{"b7a8n", NewPromotion(sq("b7"), sq("a8"), NewPiece(Knight, White))},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMove(tc.in, &b)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseMove(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	for _, bad := range []string{"", "e2", "e3e4", "z1a1", "b7b8x", "a1a2a3"} {
		if _, err := ParseMove(bad, &b); err == nil {
			t.Errorf("ParseMove(%q) succeeded, want error", bad)
		}
	}
}

func TestParseMovePromotionCooldown(t *testing.T) {
	is := is.New(t)
	b := FromFEN("8/1P6/8/8/8/8/8/8")
	m, err := ParseMove("b7b8q", &b)
	is.NoErr(err)
	is.Equal(m.Promote.Cooldown, CooldownQueen)
}

func TestParseCastle(t *testing.T) {
	is := is.New(t)
	m, err := ParseCastle("O-O", White)
	is.NoErr(err)
	is.True(m.Equal(NewKingSideCastle(White)))

	m, err = ParseCastle("0-0-0", Black)
	is.NoErr(err)
	is.True(m.Equal(NewQueenSideCastle(Black)))

	_, err = ParseCastle("O-O-O-O", Black)
	is.True(err != nil)
}
