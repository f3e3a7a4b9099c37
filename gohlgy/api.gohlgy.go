// Package gohlgy is the public api for computing graph homology.
//
// A Graph's clique structure induces a simplicial complex, and the ranks
// of that complex's boundary operators determine the Betti numbers
// (H0, H1, H2).  This package declares the shared vocabulary: vertex and
// face types, coefficient fields, result records, and catalog plumbing.
// The engine itself lives in libhlgy.
package gohlgy

const (
	// MaxVtx is the maximum number of vertices a single Graph may have.
	MaxVtx = 1 << 16

	// MaxFaceDim is the highest face dimension that appears in a complex
	// built from a graph: vertices, edges, and triangles, plus the
	// tetrahedra that downward closure can never produce but a completer
	// pass could be handed.  Betti numbers are reported through H2, so
	// boundary operators are only ever materialized through dimension 3.
	MaxFaceDim = 3

	// HomologyDims is how many Betti numbers a HomologyResult carries.
	HomologyDims = 3
)

// VtxID is a dense zero-based vertex index within a Graph.
//
// Labels (user-facing vertex names) are resolved to VtxIDs once, at graph
// construction, and all engine work is done on VtxIDs.
type VtxID int32

// Face is a simplex of a complex: a strictly ascending tuple of VtxIDs.
// A Face of k+1 vertices has dimension k ("k-face").
type Face []VtxID

// GraphLSM is the canonical binary encoding of a Graph's structure:
// the vertex count followed by the sorted edge list.  Two graphs have
// equal GraphLSM iff they have identical vertex counts and edge sets
// (under their canonical vertex ordering).
type GraphLSM []byte

// Field selects the coefficient field that homology is computed over.
//
// All arithmetic is exact: Rational uses arbitrary-precision integer
// elimination, GF2 uses bit-parallel elimination mod 2.  There is no
// floating point anywhere in rank computation.
type Field int32

const (
	// Rational computes homology with rational coefficients.
	Rational Field = 0

	// GF2 computes homology with coefficients in the two-element field.
	GF2 Field = 1

	// NumFields is the number of supported coefficient fields.
	NumFields = 2
)

// HomologyResult holds the computed dimensions of the homology groups
// H0, H1, and H2 for a single graph over a single Field.
type HomologyResult struct {
	H0 int64
	H1 int64
	H2 int64
}

// GraphInfo summarizes a Graph's basic structure.
type GraphInfo struct {
	NumVerts      int32
	NumEdges      int32
	NumComponents int32
}

// CatalogOpts specifies how a Catalog is opened.
type CatalogOpts struct {
	ReadOnly   bool
	DbPathName string // path to the db; if empty, the catalog is in-memory
}

// DefaultCatalogOpts returns a zeroed-out, read-write CatalogOpts.
func DefaultCatalogOpts() CatalogOpts {
	return CatalogOpts{}
}

// CatalogContext tracks open catalogs so that a host (or a scripting
// session) can close them all and block until every db has shut down.
type CatalogContext interface {

	// Closing is signaled when this context starts closing.
	Closing() <-chan struct{}

	// Done is signaled when this context and every attached catalog
	// have finished closing.
	Done() <-chan struct{}

	// Close signals this context to close, cascading into each attached
	// catalog.
	Close()

	// AttachCatalog registers the given catalog so that it is closed when
	// this context closes.
	AttachCatalog(cat CatalogCloser)

	// DetachCatalog unregisters a catalog that has finished closing.
	DetachCatalog(cat CatalogCloser)
}

// CatalogCloser is the surface a CatalogContext needs from an attached
// catalog.
type CatalogCloser interface {

	// Close signals the catalog to shut down, blocking until complete.
	Close() error
}

// GraphSelector selects a subset of cataloged graphs.
type GraphSelector struct {
	Min      GraphInfo
	Max      GraphInfo
	Field    Field
	AnyField bool // when set, Field is ignored and all fields match
}
