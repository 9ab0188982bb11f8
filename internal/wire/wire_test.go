package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hailam/cooldownchess/internal/board"
)

func sq(s string) board.Coord { return board.MustParseCoord(s) }

func TestEncodeMove(t *testing.T) {
	tests := []struct {
		name string
		move board.Move
		want Command
	}{
		{"plain", board.NewMove(sq("a5"), sq("c5")), Command{0, 32, 34, 0}},
		{"white promotion", board.NewPromotion(sq("d7"), sq("d8"), board.NewPiece(board.Rook, board.White)), Command{1, 51, 59, 48}},
		{"black promotion", board.NewPromotion(sq("a2"), sq("a1"), board.NewPiece(board.Queen, board.Black)), Command{1, 8, 0, 65}},
		{"black king side", board.NewKingSideCastle(board.Black), Command{2, 1, 0, 0}},
		{"white queen side", board.NewQueenSideCastle(board.White), Command{3, 0, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeMove(tc.move)
			require.Equal(t, tc.want, got)

			back, err := DecodeMove(got)
			require.NoError(t, err)
			require.True(t, back.Equal(tc.move), "decoded %v, want %v", back, tc.move)
		})
	}
}

func TestEveryMoveRoundTrips(t *testing.T) {
	colors := []board.Color{board.White, board.Black}

	var moves []board.Move
	for _, c := range colors {
		moves = append(moves, board.NewKingSideCastle(c), board.NewQueenSideCastle(c))
	}
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			f, d := board.CoordFromIndex(uint8(from)), board.CoordFromIndex(uint8(to))
			moves = append(moves, board.NewMove(f, d))
			for _, kind := range codeKinds {
				for _, c := range colors {
					moves = append(moves, board.NewPromotion(f, d, board.NewPiece(kind, c)))
				}
			}
		}
	}

	for _, m := range moves {
		back, err := DecodeMove(EncodeMove(m))
		require.NoError(t, err, "move %v", m)
		require.True(t, back.Equal(m), "decoded %v, want %v", back, m)
	}
}

func TestDecodedPromotionHasStandardCooldown(t *testing.T) {
	m, err := DecodeMove(Command{TagPromotion, 51, 59, 0x41})
	require.NoError(t, err)
	require.Equal(t, board.Queen, m.Promote.Kind)
	require.Equal(t, board.Black, m.Promote.Color)
	require.Equal(t, board.CooldownQueen, m.Promote.Cooldown)
}

func TestPieceBytes(t *testing.T) {
	kinds := []board.PieceKind{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King}
	for i, k := range kinds {
		for _, c := range []board.Color{board.White, board.Black} {
			b := EncodePiece(board.NewPiece(k, c))
			require.Equal(t, byte(i<<4)|byte(c), b)

			p, err := DecodePiece(b)
			require.NoError(t, err)
			require.True(t, p.Equal(board.NewPiece(k, c)))
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		cmd    Command
		offset int
	}{
		{"unknown tag", Command{0x04, 0, 0, 0}, 0},
		{"game tag is not a move", Command{TagJoin, 'a', 'b', 'c'}, 0},
		{"from off board", Command{TagMove, 64, 0, 0}, 1},
		{"to off board", Command{TagMove, 0, 200, 0}, 2},
		{"unknown piece", Command{TagPromotion, 51, 59, 0x60}, 3},
		{"reserved piece bits", Command{TagPromotion, 51, 59, 0x32}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeMove(tc.cmd)
			var de *DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			require.Equal(t, tc.offset, de.Offset)
			require.Equal(t, tc.cmd[tc.offset], de.Value)
		})
	}
}

func TestGameCommands(t *testing.T) {
	tests := []struct {
		gc   GameCommand
		want Command
	}{
		{GameCommand{Kind: Join, GameID: "abc"}, Command{0x10, 'a', 'b', 'c'}},
		{GameCommand{Kind: Leave}, Command{0x20, 0, 0, 0}},
		{GameCommand{Kind: Resign}, Command{0x30, 0, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.gc.Kind.String(), func(t *testing.T) {
			got, err := EncodeGameCommand(tc.gc)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)

			back, err := DecodeGameCommand(got)
			require.NoError(t, err)
			require.Equal(t, tc.gc, back)
		})
	}

	_, err := EncodeGameCommand(GameCommand{Kind: Join, GameID: "toolong"})
	require.ErrorIs(t, err, ErrBadGameID)

	_, err = DecodeGameCommand(Command{TagJoin, 0xff, 0xfe, 0xfd})
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestDecode(t *testing.T) {
	msg, err := Decode(Command{TagKingSideCastle, 1, 0, 0})
	require.NoError(t, err)
	require.True(t, msg.IsMove)
	require.True(t, msg.Move.Equal(board.NewKingSideCastle(board.Black)))

	msg, err = Decode(Command{TagResign, 0, 0, 0})
	require.NoError(t, err)
	require.False(t, msg.IsMove)
	require.Equal(t, Resign, msg.Command.Kind)

	_, err = Decode(Command{0x7f, 0, 0, 0})
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, byte(0x7f), de.Value)
}

func TestParseCommand(t *testing.T) {
	c, err := ParseCommand("01333b30")
	require.NoError(t, err)
	require.Equal(t, Command{1, 51, 59, 48}, c)
	require.Equal(t, "01333b30", c.String())

	c, err = ParseCommand("0x00202200")
	require.NoError(t, err)
	require.Equal(t, Command{0, 32, 34, 0}, c)

	_, err = ParseCommand("0102")
	require.Error(t, err)
	_, err = ParseCommand("zz000000")
	require.Error(t, err)
}
