package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece    [2][7][64]uint64 // [Color][PieceKind][Square]
	zobristReady    [2][7][64]uint64 // XOR when the piece on the square has no cooldown left
	zobristCastling [16]uint64       // All 16 castling combinations
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = rng.next()
				zobristReady[c][k][sq] = rng.next()
			}
		}
	}

	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
}

// Hash returns a Zobrist key of everything move generation depends on: piece placement,
// which pieces are ready, and castling rights. Exact cooldown values are not hashed, so two
// boards differing only in how long a cooling piece still has to wait hash the same.
func (b *Board) Hash() uint64 {
	h := zobristCastling[b.Castling&AllCastling]
	b.forEach(func(c Coord, p Piece) {
		sq := c.Index()
		h ^= zobristPiece[p.Color&1][p.Kind][sq]
		if p.Ready() {
			h ^= zobristReady[p.Color&1][p.Kind][sq]
		}
	})
	return h
}
