package libhlgy

import (
	"github.com/hlgy-systems/gohlgy/gohlgy"
)

// Reduce returns a new Graph with dominated vertices removed: a vertex v
// is dropped while some other surviving vertex w has N(v) contained in
// N(w) + {w}.  Isolated vertices are dominated by everything, so they
// are dropped whenever another vertex survives.  Removal restarts the
// scan after each deletion and stops at a fixed point.
//
// The contract is that reduction preserves the homology of the induced
// complex, so it can run ahead of the expensive rank computations.
//
// X itself is not modified.  The scan runs on a scratch copy of the
// adjacency rows plus a deleted-vertex mask; the surviving labels are
// re-canonicalized into the result.
func (X *Graph) Reduce() *Graph {
	numVtx := X.VertexCount()
	words := (numVtx + 63) >> 6

	arena := make([]uint64, numVtx*words)
	copy(arena, X.bits)
	rows := make([]VtxSet, numVtx)
	for i := 0; i < numVtx; i++ {
		rows[i] = VtxSet(arena[i*words : (i+1)*words])
	}
	deleted := NewVtxSet(numVtx)
	scrap := NewVtxSet(numVtx)
	numDeleted := 0

	for changed := true; changed; {
		changed = false
	scan:
		for v := 0; v < numVtx; v++ {
			vid := gohlgy.VtxID(v)
			if deleted.Test(vid) {
				continue
			}
			for w := 0; w < numVtx; w++ {
				wid := gohlgy.VtxID(w)
				if w == v || deleted.Test(wid) {
					continue
				}
				scrap.SetCopy(rows[w])
				scrap.Set(wid)
				if rows[v].SubsetOf(scrap) {
					rows[v].ForEach(func(u gohlgy.VtxID) bool {
						rows[u].Unset(vid)
						return true
					})
					rows[v].Zero()
					deleted.Set(vid)
					numDeleted++
					changed = true
					break scan
				}
			}
		}
	}

	Xr := NewGraph(nil)
	if numDeleted == 0 {
		Xr.Init(X)
		return Xr
	}
	Xr.name = X.name

	for i := 0; i < numVtx; i++ {
		if !deleted.Test(gohlgy.VtxID(i)) {
			Xr.labels = append(Xr.labels, X.labels[i])
		}
	}
	sortVtxLabels(Xr.labels)
	for i, label := range Xr.labels {
		Xr.index[label] = gohlgy.VtxID(i)
	}
	Xr.allocRows(len(Xr.labels))

	for i := 0; i < numVtx; i++ {
		if deleted.Test(gohlgy.VtxID(i)) {
			continue
		}
		a := Xr.index[X.labels[i]]
		rows[i].ForEach(func(j gohlgy.VtxID) bool {
			if j > gohlgy.VtxID(i) {
				b := Xr.index[X.labels[j]]
				Xr.setEdge(a, b)
			}
			return true
		})
	}
	Xr.numEdges = Xr.countEdges()
	return Xr
}
