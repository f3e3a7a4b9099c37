package libhlgy

import (
	"github.com/hlgy-systems/gohlgy/gohlgy"
)

// ForEachComponent calls fn with the vertex set of each connected
// component of X, in ascending order of lowest vertex.  The VtxSet
// passed to fn is scratch storage, reused between calls.
//
// The walk is word-parallel: each step ORs together the rows of the
// whole frontier instead of popping vertices one at a time.
func (X *Graph) ForEachComponent(fn func(comp VtxSet) bool) {
	numVtx := len(X.rows)
	if numVtx == 0 {
		return
	}
	visited := NewVtxSet(numVtx)
	frontier := NewVtxSet(numVtx)
	reach := NewVtxSet(numVtx)
	comp := NewVtxSet(numVtx)

	for v := 0; v < numVtx; v++ {
		vid := gohlgy.VtxID(v)
		if visited.Test(vid) {
			continue
		}
		comp.Zero()
		comp.Set(vid)
		frontier.Zero()
		frontier.Set(vid)
		visited.Set(vid)

		for !frontier.IsZero() {
			reach.Zero()
			frontier.ForEach(func(u gohlgy.VtxID) bool {
				reach.SetOr(reach, X.rows[u])
				return true
			})
			frontier.SetAndNot(reach, visited)
			visited.SetOr(visited, frontier)
			comp.SetOr(comp, frontier)
		}
		if !fn(comp) {
			return
		}
	}
}

// NumComponents returns the number of connected components of X.
// A graph's H0 equals its component count, which makes this the cheap
// cross-check on the rank machinery.
func (X *Graph) NumComponents() int {
	n := 0
	X.ForEachComponent(func(comp VtxSet) bool {
		n++
		return true
	})
	return n
}
