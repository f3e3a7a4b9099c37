package libhlgy

import (
	"math/bits"

	"github.com/hlgy-systems/gohlgy/gohlgy"
)

// VtxSet is a bit vector over a graph's vertex indices: vertex i lives in
// word i>>6 at bit position i&63.
//
// All the hot loops of cycle detection and reduction run on whole words,
// so adjacency rows, scratch intersections, and visited sets are all
// VtxSets of the same width.
type VtxSet []uint64

// NewVtxSet returns a zeroed set wide enough for numVtx vertices.
func NewVtxSet(numVtx int) VtxSet {
	return make(VtxSet, (numVtx+63)>>6)
}

func (vs VtxSet) Test(i gohlgy.VtxID) bool {
	return vs[i>>6]&(1<<uint(i&63)) != 0
}

func (vs VtxSet) Set(i gohlgy.VtxID) {
	vs[i>>6] |= 1 << uint(i&63)
}

func (vs VtxSet) Unset(i gohlgy.VtxID) {
	vs[i>>6] &^= 1 << uint(i&63)
}

// Zero clears every bit.
func (vs VtxSet) Zero() {
	for w := range vs {
		vs[w] = 0
	}
}

// IsZero returns true if no bit is set.
func (vs VtxSet) IsZero() bool {
	for _, w := range vs {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (vs VtxSet) Count() int {
	n := 0
	for _, w := range vs {
		n += bits.OnesCount64(w)
	}
	return n
}

// SetCopy sets vs = src.
func (vs VtxSet) SetCopy(src VtxSet) {
	copy(vs, src)
}

// SetAnd sets vs = a & b.  Operands may alias vs.
func (vs VtxSet) SetAnd(a, b VtxSet) {
	for w := range vs {
		vs[w] = a[w] & b[w]
	}
}

// SetAndNot sets vs = a &^ b.  Operands may alias vs.
func (vs VtxSet) SetAndNot(a, b VtxSet) {
	for w := range vs {
		vs[w] = a[w] &^ b[w]
	}
}

// SetOr sets vs = a | b.  Operands may alias vs.
func (vs VtxSet) SetOr(a, b VtxSet) {
	for w := range vs {
		vs[w] = a[w] | b[w]
	}
}

// ClearThrough clears bits 0 through i, inclusive.
func (vs VtxSet) ClearThrough(i gohlgy.VtxID) {
	wi := int(i >> 6)
	for w := 0; w < wi; w++ {
		vs[w] = 0
	}
	vs[wi] &^= (uint64(1) << uint((i&63)+1)) - 1
}

// SubsetOf reports whether every set bit of vs is also set in other.
func (vs VtxSet) SubsetOf(other VtxSet) bool {
	for w := range vs {
		if vs[w]&^other[w] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether vs and other contain exactly the same bits.
func (vs VtxSet) Equal(other VtxSet) bool {
	if len(vs) != len(other) {
		return false
	}
	for w := range vs {
		if vs[w] != other[w] {
			return false
		}
	}
	return true
}

// ForEach calls fn on each set vertex in ascending order, stopping early
// if fn returns false.
func (vs VtxSet) ForEach(fn func(i gohlgy.VtxID) bool) {
	for w, word := range vs {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			if !fn(gohlgy.VtxID((w << 6) + b)) {
				return
			}
			word &= word - 1
		}
	}
}

// AppendTo appends the set vertices to io in ascending order.
func (vs VtxSet) AppendTo(io []gohlgy.VtxID) []gohlgy.VtxID {
	for w, word := range vs {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			io = append(io, gohlgy.VtxID((w<<6)+b))
			word &= word - 1
		}
	}
	return io
}
