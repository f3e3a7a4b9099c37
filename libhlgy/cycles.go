package libhlgy

import (
	"github.com/hlgy-systems/gohlgy/gohlgy"
)

// Tri is a triangle: three mutually adjacent vertices i < j < k.
type Tri [3]gohlgy.VtxID

// Quad is a fillable 4-cycle (i, u, j, w): a pair i < j of non-adjacent
// vertices together with two of their common neighbors u < w.  The cycle
// runs i-u-j-w-i and {i,j} is its filling diagonal.
type Quad [4]gohlgy.VtxID

// VtxSetKey returns q's four vertices in ascending order, identifying
// the cycle's vertex set regardless of which diagonal discovered it.
func (q Quad) VtxSetKey() Quad {
	k := q
	for a := 1; a < 4; a++ {
		for b := a; b > 0 && k[b] < k[b-1]; b-- {
			k[b], k[b-1] = k[b-1], k[b]
		}
	}
	return k
}

// AppendTriangles appends every triangle of X to io, in ascending
// (i, j, k) order.
//
// The scan is bit-parallel: for each vertex i, each neighbor j > i is
// pulled from i's masked row, and the triangle apexes k > j are exactly
// the masked bits of rows[i] & rows[j].
func (X *Graph) AppendTriangles(io []Tri) []Tri {
	numVtx := len(X.rows)
	if numVtx == 0 {
		return io
	}
	jrow := NewVtxSet(numVtx)
	krow := NewVtxSet(numVtx)

	for i := 0; i < numVtx; i++ {
		vi := gohlgy.VtxID(i)
		jrow.SetCopy(X.rows[i])
		jrow.ClearThrough(vi)
		jrow.ForEach(func(vj gohlgy.VtxID) bool {
			krow.SetAnd(X.rows[vi], X.rows[vj])
			krow.ClearThrough(vj)
			krow.ForEach(func(vk gohlgy.VtxID) bool {
				io = append(io, Tri{vi, vj, vk})
				return true
			})
			return true
		})
	}
	return io
}

// AppendFillableQuads appends every fillable 4-cycle of X to io: for
// each non-adjacent pair i < j, one Quad per pair u < w of their common
// neighbors.  Unlike the triangle scan, the common-neighbor set is not
// masked, so u and w range over all of the pair's common neighbors.
//
// Each 4-vertex set is emitted at most once, by the first (i, j) pair
// that reaches it in the ascending scan: a chordless square shows up
// from both of its diagonals but must only be filled through one.
func (X *Graph) AppendFillableQuads(io []Quad) []Quad {
	numVtx := len(X.rows)
	if numVtx == 0 {
		return io
	}
	common := NewVtxSet(numVtx)
	scrap := make([]gohlgy.VtxID, 0, 16)
	var seen map[Quad]struct{}

	for i := 0; i < numVtx; i++ {
		vi := gohlgy.VtxID(i)
		for j := i + 1; j < numVtx; j++ {
			vj := gohlgy.VtxID(j)
			if X.rows[i].Test(vj) {
				continue
			}
			common.SetAnd(X.rows[i], X.rows[j])
			scrap = common.AppendTo(scrap[:0])
			if len(scrap) < 2 {
				continue
			}
			for x := 0; x < len(scrap); x++ {
				for y := x + 1; y < len(scrap); y++ {
					q := Quad{vi, scrap[x], vj, scrap[y]}
					if seen == nil {
						seen = make(map[Quad]struct{})
					}
					key := q.VtxSetKey()
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					io = append(io, q)
				}
			}
		}
	}
	return io
}
