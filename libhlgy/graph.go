package libhlgy

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/pkg/errors"
)

// GraphOpts alters how a Graph is built from user input.
type GraphOpts struct {

	// StrictLabels makes adjacency entries that reference a label absent
	// from the vertex list an error instead of silently dropping them.
	StrictLabels bool
}

// PrintOpts selects what WriteAsString emits for a Graph.
type PrintOpts struct {
	Label   string // optional prefix label
	Edges   bool   // emit vertex labels and edge list
	Matrix  bool   // emit the 0/1 adjacency matrix
	Results bool   // emit cached Betti numbers for Field
	Timings bool   // emit elapsed compute time for Field
	Field   gohlgy.Field
}

var DefaultPrintOpts = PrintOpts{
	Results: true,
	Timings: true,
	Field:   gohlgy.Rational,
}

var graphPool = sync.Pool{
	New: func() interface{} {
		return new(Graph)
	},
}

// NewGraph returns a new Graph from the pool, initialized as a copy of
// Xsrc (or as the empty graph if Xsrc is nil).
func NewGraph(Xsrc *Graph) *Graph {
	X := graphPool.Get().(*Graph)
	X.Init(Xsrc)
	return X
}

// Graph is a finite simple graph with named vertices.
//
// Vertex labels are canonically ordered at construction (numerically
// when every label parses as a base-10 integer, lexicographically
// otherwise), and from then on all engine work runs on dense VtxIDs and
// adjacency bit rows.  Rows are kept symmetric and loop-free: bit j of
// row i is set iff {i,j} is an edge and i != j.
type Graph struct {
	name     string
	labels   []string // canonically sorted vertex labels
	index    map[string]gohlgy.VtxID
	bits     []uint64 // backing arena for rows
	rows     []VtxSet // rows[i] = neighbor bits of vertex i
	numEdges int

	hlgy    [gohlgy.NumFields]*gohlgy.HomologyResult
	hlgyUs  [gohlgy.NumFields]int64
	hlgyErr error
}

// Init resets X to a copy of Xsrc, or to the empty graph if Xsrc is nil.
func (X *Graph) Init(Xsrc *Graph) {
	X.name = ""
	X.labels = X.labels[:0]
	X.bits = X.bits[:0]
	X.rows = X.rows[:0]
	X.numEdges = 0
	for fi := range X.hlgy {
		X.hlgy[fi] = nil
		X.hlgyUs[fi] = 0
	}
	X.hlgyErr = nil
	if X.index == nil {
		X.index = make(map[string]gohlgy.VtxID)
	} else {
		for label := range X.index {
			delete(X.index, label)
		}
	}

	if Xsrc == nil {
		return
	}

	X.name = Xsrc.name
	X.labels = append(X.labels, Xsrc.labels...)
	X.allocRows(len(X.labels))
	copy(X.bits, Xsrc.bits)
	for i, label := range X.labels {
		X.index[label] = gohlgy.VtxID(i)
	}
	X.numEdges = Xsrc.numEdges
	X.hlgy = Xsrc.hlgy
	X.hlgyUs = Xsrc.hlgyUs
	X.hlgyErr = Xsrc.hlgyErr
}

// Reclaim returns X to the pool.  The caller must not retain X.
func (X *Graph) Reclaim() {
	if X != nil {
		graphPool.Put(X)
	}
}

// InitFromAdjacency builds X from a vertex label list and an adjacency
// list keyed by label.  Symmetry is not required of the input: each
// listed edge is set in both directions.  Self edges are dropped, as are
// duplicate vertex labels.  Unknown labels (as adjacency keys or as
// neighbors) are dropped unless opts.StrictLabels is set, in which case
// they fail with ErrUnknownLabel.
func (X *Graph) InitFromAdjacency(name string, vertices []string, adj map[string][]string, opts GraphOpts) error {
	X.Init(nil)
	X.name = name

	X.labels = append(X.labels, vertices...)
	sortVtxLabels(X.labels)
	X.labels = dedupeSorted(X.labels)
	if len(X.labels) > gohlgy.MaxVtx {
		return gohlgy.ErrGraphTooBig
	}
	for i, label := range X.labels {
		X.index[label] = gohlgy.VtxID(i)
	}
	X.allocRows(len(X.labels))

	keys := make([]string, 0, len(adj))
	for v := range adj {
		keys = append(keys, v)
	}
	sort.Strings(keys)

	for _, v := range keys {
		vi, ok := X.index[v]
		if !ok {
			if opts.StrictLabels {
				return errors.Wrapf(gohlgy.ErrUnknownLabel, "adjacency key %q", v)
			}
			continue
		}
		for _, u := range adj[v] {
			ui, ok := X.index[u]
			if !ok {
				if opts.StrictLabels {
					return errors.Wrapf(gohlgy.ErrUnknownLabel, "neighbor %q of %q", u, v)
				}
				continue
			}
			if ui == vi {
				continue
			}
			X.setEdge(vi, ui)
		}
	}

	X.numEdges = X.countEdges()
	return nil
}

// InitFromLSM builds X from a canonical structure encoding, assigning
// the decimal labels "1".."N".
func (X *Graph) InitFromLSM(enc gohlgy.GraphLSM) error {
	X.Init(nil)
	numVerts, edges, err := enc.Decode()
	if err != nil {
		return err
	}
	X.initIntLabels(numVerts)
	for _, e := range edges {
		X.setEdge(e[0], e[1])
	}
	X.numEdges = len(edges)
	return nil
}

// NewGraphFromLSM is a convenience for NewGraph + InitFromLSM.
func NewGraphFromLSM(enc gohlgy.GraphLSM) (*Graph, error) {
	X := NewGraph(nil)
	if err := X.InitFromLSM(enc); err != nil {
		X.Reclaim()
		return nil, err
	}
	return X, nil
}

// NewGraphFromEdges builds a graph on the vertices 1..numVtx (decimal
// labels) from a list of 1-based edges.
func NewGraphFromEdges(name string, numVtx int, edges [][2]int) (*Graph, error) {
	if numVtx < 0 || numVtx > gohlgy.MaxVtx {
		return nil, gohlgy.ErrGraphTooBig
	}
	X := NewGraph(nil)
	X.name = name
	X.initIntLabels(numVtx)
	for _, e := range edges {
		a, b := e[0], e[1]
		if a < 1 || a > numVtx || b < 1 || b > numVtx {
			X.Reclaim()
			return nil, errors.Wrapf(gohlgy.ErrBadEdge, "edge %d-%d out of range", a, b)
		}
		if a == b {
			X.Reclaim()
			return nil, errors.Wrapf(gohlgy.ErrBadEdge, "self edge %d-%d", a, b)
		}
		X.setEdge(gohlgy.VtxID(a-1), gohlgy.VtxID(b-1))
	}
	X.numEdges = X.countEdges()
	return X, nil
}

// initIntLabels sets up the vertices 1..numVtx with decimal labels,
// whose canonical (numeric) order is their natural order.
func (X *Graph) initIntLabels(numVtx int) {
	for i := 1; i <= numVtx; i++ {
		label := strconv.Itoa(i)
		X.labels = append(X.labels, label)
		X.index[label] = gohlgy.VtxID(i - 1)
	}
	X.allocRows(numVtx)
}

func (X *Graph) allocRows(numVtx int) {
	words := (numVtx + 63) >> 6
	need := numVtx * words
	if cap(X.bits) >= need {
		X.bits = X.bits[:need]
		for w := range X.bits {
			X.bits[w] = 0
		}
	} else {
		X.bits = make([]uint64, need)
	}
	if cap(X.rows) >= numVtx {
		X.rows = X.rows[:numVtx]
	} else {
		X.rows = make([]VtxSet, numVtx)
	}
	for i := 0; i < numVtx; i++ {
		X.rows[i] = VtxSet(X.bits[i*words : (i+1)*words])
	}
}

func (X *Graph) setEdge(a, b gohlgy.VtxID) {
	X.rows[a].Set(b)
	X.rows[b].Set(a)
}

func (X *Graph) countEdges() int {
	n := 0
	for _, row := range X.rows {
		n += row.Count()
	}
	return n / 2
}

// Name returns the display name of X (may be empty).
func (X *Graph) Name() string {
	return X.name
}

// SetName assigns the display name of X.
func (X *Graph) SetName(name string) {
	X.name = name
}

// VertexCount returns the number of vertices.
func (X *Graph) VertexCount() int {
	return len(X.labels)
}

// EdgeCount returns the number of edges.
func (X *Graph) EdgeCount() int {
	return X.numEdges
}

// Label returns the label of the given vertex.
func (X *Graph) Label(vi gohlgy.VtxID) string {
	return X.labels[vi]
}

// Labels returns the canonically ordered vertex labels.  The returned
// slice is X's internal storage and must not be modified.
func (X *Graph) Labels() []string {
	return X.labels
}

// VtxOf resolves a vertex label to its dense index.
func (X *Graph) VtxOf(label string) (gohlgy.VtxID, bool) {
	vi, ok := X.index[label]
	return vi, ok
}

// HasEdge reports whether {a,b} is an edge.
func (X *Graph) HasEdge(a, b gohlgy.VtxID) bool {
	return X.rows[a].Test(b)
}

// AppendEdges appends X's edges to io in ascending (a,b) order with a < b.
func (X *Graph) AppendEdges(io [][2]gohlgy.VtxID) [][2]gohlgy.VtxID {
	for i := range X.rows {
		a := gohlgy.VtxID(i)
		X.rows[i].ForEach(func(b gohlgy.VtxID) bool {
			if b > a {
				io = append(io, [2]gohlgy.VtxID{a, b})
			}
			return true
		})
	}
	return io
}

// AppendLSM appends X's canonical structure encoding to io.
func (X *Graph) AppendLSM(io []byte) gohlgy.GraphLSM {
	edges := X.AppendEdges(make([][2]gohlgy.VtxID, 0, X.numEdges))
	return gohlgy.AppendGraphLSM(io, len(X.labels), edges)
}

// GetInfo returns summary info for X.
func (X *Graph) GetInfo() gohlgy.GraphInfo {
	return gohlgy.GraphInfo{
		NumVerts:      int32(len(X.labels)),
		NumEdges:      int32(X.numEdges),
		NumComponents: int32(X.NumComponents()),
	}
}

// Homology returns the Betti numbers of X over the given field,
// computing (and caching) them on first use.
func (X *Graph) Homology(field gohlgy.Field) (gohlgy.HomologyResult, error) {
	if field < 0 || field >= gohlgy.NumFields {
		return gohlgy.HomologyResult{}, gohlgy.ErrBadField
	}
	if res := X.hlgy[field]; res != nil {
		return *res, nil
	}
	res, elapsedUs, err := GraphHomology(X, field)
	if err != nil {
		return gohlgy.HomologyResult{}, err
	}
	X.SetCachedResult(field, res, elapsedUs)
	return res, nil
}

// CachedResult returns the already-computed result for the given field,
// if any, along with its compute time in microseconds.
func (X *Graph) CachedResult(field gohlgy.Field) (res *gohlgy.HomologyResult, elapsedUs int64, ok bool) {
	if field < 0 || field >= gohlgy.NumFields || X.hlgy[field] == nil {
		return nil, 0, false
	}
	return X.hlgy[field], X.hlgyUs[field], true
}

// SetCachedResult attaches an already-known result to X, e.g. one pulled
// from a catalog.
func (X *Graph) SetCachedResult(field gohlgy.Field, res gohlgy.HomologyResult, elapsedUs int64) {
	if field < 0 || field >= gohlgy.NumFields {
		return
	}
	own := res
	X.hlgy[field] = &own
	X.hlgyUs[field] = elapsedUs
}

// HomologyErr returns the failure recorded against X by a pipeline
// stage, if any.
func (X *Graph) HomologyErr() error {
	return X.hlgyErr
}

// WriteAsString writes a multi-line description of X per opts.
func (X *Graph) WriteAsString(out io.Writer, opts PrintOpts) {
	name := X.name
	if name == "" {
		name = "Unnamed Graph"
	}
	if opts.Label != "" {
		fmt.Fprintf(out, "%s ", opts.Label)
	}
	fmt.Fprintf(out, "Graph: %s\n", name)

	if opts.Edges {
		fmt.Fprintf(out, "   verts:")
		for _, label := range X.labels {
			fmt.Fprintf(out, " %s", label)
		}
		fmt.Fprintf(out, "\n   edges:")
		for _, e := range X.AppendEdges(nil) {
			fmt.Fprintf(out, " %s-%s", X.labels[e[0]], X.labels[e[1]])
		}
		fmt.Fprintf(out, "\n")
	}

	if opts.Matrix {
		numVtx := len(X.labels)
		for i := 0; i < numVtx; i++ {
			fmt.Fprintf(out, "   [")
			for j := 0; j < numVtx; j++ {
				bit := 0
				if X.rows[i].Test(gohlgy.VtxID(j)) {
					bit = 1
				}
				if j > 0 {
					fmt.Fprintf(out, " ")
				}
				fmt.Fprintf(out, "%d", bit)
			}
			fmt.Fprintf(out, "]\n")
		}
	}

	if opts.Results {
		if X.hlgyErr != nil {
			fmt.Fprintf(out, "error: %v\n", X.hlgyErr)
		} else if res, elapsedUs, ok := X.CachedResult(opts.Field); ok {
			fmt.Fprintf(out, "(H0, H1, H2): %s\n", res.String())
			if opts.Timings {
				fmt.Fprintf(out, "Time: %v sec\n", float64(elapsedUs)/1e6)
			}
		}
	}
}

// sortVtxLabels orders labels numerically when every label parses as a
// base-10 integer, lexicographically otherwise.  Numeric ties (such as
// "01" vs "1") fall back to lexicographic order so the order is total.
func sortVtxLabels(labels []string) {
	allNumeric := true
	for _, s := range labels {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			allNumeric = false
			break
		}
	}
	if !allNumeric {
		sort.Strings(labels)
		return
	}
	sort.Slice(labels, func(i, j int) bool {
		a, _ := strconv.ParseInt(labels[i], 10, 64)
		b, _ := strconv.ParseInt(labels[j], 10, 64)
		if a != b {
			return a < b
		}
		return labels[i] < labels[j]
	})
}

func dedupeSorted(labels []string) []string {
	out := labels[:0]
	for i, s := range labels {
		if i == 0 || s != labels[i-1] {
			out = append(out, s)
		}
	}
	return out
}
