package tetris

import "math/rand/v2"

// Bag is the 7-bag randomizer: every piece is drawn exactly once before any
// piece repeats. A Bag is owned by a single game and is not safe for
// concurrent use.
type Bag struct {
	rng    *rand.Rand
	pieces []Piece
}

// NewBag creates an empty bag drawing from rng. It refills on first draw.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{
		rng:    rng,
		pieces: make([]Piece, 0, NumPieces),
	}
}

// Next pops a random piece, refilling the bag with all seven when exhausted.
func (b *Bag) Next() Piece {
	if len(b.pieces) == 0 {
		b.refill()
	}

	// Swap a random piece to the end and pop it
	last := len(b.pieces) - 1
	i := b.rng.IntN(len(b.pieces))
	b.pieces[i], b.pieces[last] = b.pieces[last], b.pieces[i]
	p := b.pieces[last]
	b.pieces = b.pieces[:last]
	return p
}

// Remaining returns how many pieces are left before the next refill.
func (b *Bag) Remaining() int {
	return len(b.pieces)
}

func (b *Bag) refill() {
	b.pieces = append(b.pieces[:0], AllPieces[:]...)
}
