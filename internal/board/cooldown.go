package board

import "time"

// TickRate is the amount one Tick removes from every cooldown.
const TickRate = 16 * time.Millisecond

// Standard cooldowns, applied whenever a piece completes a move.
const (
	CooldownPawn   = 500 * time.Millisecond
	CooldownKnight = 1500 * time.Millisecond
	CooldownBishop = 1500 * time.Millisecond
	CooldownRook   = 5000 * time.Millisecond
	CooldownQueen  = 9000 * time.Millisecond
	CooldownKing   = 1500 * time.Millisecond
)

var standardCooldowns = [...]time.Duration{
	NoKind: 0,
	Pawn:   CooldownPawn,
	Knight: CooldownKnight,
	Bishop: CooldownBishop,
	Rook:   CooldownRook,
	Queen:  CooldownQueen,
	King:   CooldownKing,
}

// StandardCooldown returns the cooldown a piece of the given kind receives after moving.
func StandardCooldown(k PieceKind) time.Duration {
	if int(k) >= len(standardCooldowns) {
		return 0
	}
	return standardCooldowns[k]
}

// TicksUntilReady returns how many ticks it takes for a cooldown to reach zero.
func TicksUntilReady(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + TickRate - 1) / TickRate)
}
