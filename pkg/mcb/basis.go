package mcb

import "math/bits"

// bitset is a GF(2) vector over a component's edge positions.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) flip(i int) {
	b[i/64] ^= 1 << uint(i%64)
}

func (b bitset) xor(o bitset) {
	for i := range b {
		b[i] ^= o[i]
	}
}

// lowest returns the position of the lowest set bit, or -1 for the zero
// vector.
func (b bitset) lowest() int {
	for i, w := range b {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// basis holds accepted vectors in echelon form keyed by their lowest set bit.
type basis struct {
	rows map[int]bitset
}

func newBasis(n int) *basis {
	return &basis{rows: make(map[int]bitset, n)}
}

// insert reduces v against the accepted rows and keeps it if a nonzero
// remainder is left. It reports whether v was independent. v is consumed.
func (b *basis) insert(v bitset) bool {
	for {
		p := v.lowest()
		if p < 0 {
			return false
		}
		row, ok := b.rows[p]
		if !ok {
			b.rows[p] = v
			return true
		}
		v.xor(row)
	}
}
