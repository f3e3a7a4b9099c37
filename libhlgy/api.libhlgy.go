// Package libhlgy is the graph homology engine.
//
// A Graph is loaded (from an adjacency list, a grammar expression, or a
// catalog encoding), its triangles and fillable 4-cycles are enumerated
// with bit-parallel scans, a simplicial complex is built from them, and
// the Betti numbers (H0, H1, H2) are computed from exact boundary
// operator ranks over Q or Z/2.
package libhlgy

import (
	"github.com/hlgy-systems/gohlgy/gohlgy"
)

// OnGraphHit is the channel a Catalog pushes selected graphs onto.
// Ownership of each pushed Graph transfers to the receiver, who should
// Reclaim each graph when done with it.
type OnGraphHit chan<- *Graph

// GraphAdder takes possession of graphs pushed to it, storing whatever
// homology results each graph carries.
type GraphAdder interface {

	// TryAddGraphResults stores each of X's attached results that is not
	// already present, returning how many were newly added.
	TryAddGraphResults(X *Graph) int
}

// Catalog is a persistent store of homology results, keyed by canonical
// graph structure plus coefficient field.
type Catalog interface {
	gohlgy.CatalogCloser
	GraphAdder

	// IsReadOnly returns true if this catalog was opened read-only.
	IsReadOnly() bool

	// TryAddResult stores rec for X's structure, returning false iff an
	// entry for (X, rec.Field) is already present.
	TryAddResult(X *Graph, rec *gohlgy.HomologyRecord) bool

	// LookupResult fetches the stored record for (X, field), returning
	// nil if no entry exists.
	LookupResult(X *Graph, field gohlgy.Field) (*gohlgy.HomologyRecord, error)

	// NumGraphs returns how many distinct graph structures on numVerts
	// vertices have at least one stored result.  If numVerts <= 0, the
	// total over all vertex counts is returned.
	NumGraphs(numVerts int) int64

	// Select pushes each cataloged graph selected by sel onto onHit in
	// ascending structure order, then closes onHit.
	Select(sel gohlgy.GraphSelector, onHit OnGraphHit)

	// Verify decodes every stored entry, recomputes its homology over
	// its recorded field, and counts entries whose stored Betti numbers
	// do not match the recomputation.
	Verify() (numChecked, numMismatched int64, err error)
}
