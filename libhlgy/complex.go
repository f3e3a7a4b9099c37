package libhlgy

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/pkg/errors"
)

// Complex is a simplicial complex over a graph's vertex index space.
//
// Faces live in a red-black tree keyed by the canonical face order, so
// iteration is always dimension-major and deterministic.  Chain-space
// bases are frozen snapshots of that order, one per dimension, and every
// boundary operator built from this complex indexes against them.
//
// Faces above dimension MaxFaceDim are rejected: homology is reported
// through H2, so nothing taller can ever contribute.
type Complex struct {
	numVtx int
	maxDim int
	faces  *redblacktree.Tree
	basis  [][]gohlgy.Face // per-dim frozen bases; nil until first use
}

// NewComplex returns an empty complex over numVtx vertex indices.
func NewComplex(numVtx int) *Complex {
	return &Complex{
		numVtx: numVtx,
		maxDim: -1,
		faces: redblacktree.NewWith(func(a, b interface{}) int {
			return gohlgy.CompareFaces(a.(gohlgy.Face), b.(gohlgy.Face))
		}),
	}
}

// NumVtx returns the size of the vertex index space this complex spans.
func (c *Complex) NumVtx() int {
	return c.numVtx
}

// NumFaces returns the total face count over all dimensions.
func (c *Complex) NumFaces() int {
	return c.faces.Size()
}

// MaxDim returns the highest face dimension present (-1 when empty).
func (c *Complex) MaxDim() int {
	return c.maxDim
}

// AddFace inserts a copy of f, returning whether it was newly added.
// f must be a strictly ascending tuple within this complex's vertex
// space, of dimension at most MaxFaceDim.
func (c *Complex) AddFace(f gohlgy.Face) (bool, error) {
	if err := f.Validate(c.numVtx); err != nil {
		return false, err
	}
	if f.Dim() > gohlgy.MaxFaceDim {
		return false, gohlgy.ErrBadFace
	}
	return c.addFace(f), nil
}

// addFace inserts a known-valid face.
func (c *Complex) addFace(f gohlgy.Face) bool {
	if _, found := c.faces.Get(f); found {
		return false
	}
	c.faces.Put(f.Clone(), nil)
	if f.Dim() > c.maxDim {
		c.maxDim = f.Dim()
	}
	c.basis = nil
	return true
}

// Contains reports whether f is a face of the complex.
func (c *Complex) Contains(f gohlgy.Face) bool {
	_, found := c.faces.Get(f)
	return found
}

// ForEachFace calls fn on every face in canonical order, stopping early
// if fn returns false.  The face passed to fn is owned by the complex.
func (c *Complex) ForEachFace(fn func(f gohlgy.Face) bool) {
	itr := c.faces.Iterator()
	for itr.Next() {
		if !fn(itr.Key().(gohlgy.Face)) {
			return
		}
	}
}

// Basis returns the frozen n-dimensional chain basis: all n-faces in
// canonical order.  The returned slice is owned by the complex and is
// only valid until the next AddFace.
func (c *Complex) Basis(n int) []gohlgy.Face {
	if n < 0 || n > c.maxDim {
		return nil
	}
	if c.basis == nil {
		c.basis = make([][]gohlgy.Face, c.maxDim+1)
		c.ForEachFace(func(f gohlgy.Face) bool {
			d := f.Dim()
			c.basis[d] = append(c.basis[d], f)
			return true
		})
	}
	return c.basis[n]
}

// Validate checks that every vertex of the complex's index space has
// its singleton face and that the complex is downward closed: every
// face's codimension-1 subfaces must be present (which transitively
// covers all smaller subsets).  Failure returns ErrInvalidComplex with
// the first offender.
func (c *Complex) Validate() error {
	singleton := gohlgy.Face{0}
	for vi := 0; vi < c.numVtx; vi++ {
		singleton[0] = gohlgy.VtxID(vi)
		if !c.Contains(singleton) {
			return errors.Wrapf(gohlgy.ErrInvalidComplex, "vertex %d has no singleton face", vi)
		}
	}

	var badFace, missing gohlgy.Face
	var scrap gohlgy.Face
	c.ForEachFace(func(f gohlgy.Face) bool {
		if len(f) < 2 {
			return true
		}
		for p := range f {
			scrap = f.DropVtx(p, scrap[:0])
			if !c.Contains(scrap) {
				badFace = f
				missing = scrap.Clone()
				return false
			}
		}
		return true
	})
	if badFace != nil {
		return errors.Wrapf(gohlgy.ErrInvalidComplex, "face %v is missing subface %v", badFace, missing)
	}
	return nil
}

// Complete inserts every missing proper subface of every face, making
// the complex downward closed.  A single pass suffices (a subset of a
// subset is itself a subset), so calling Complete on a closed complex
// adds nothing.  Returns the number of faces added.
func (c *Complex) Complete() int {
	snapshot := make([]gohlgy.Face, 0, c.faces.Size())
	c.ForEachFace(func(f gohlgy.Face) bool {
		snapshot = append(snapshot, f)
		return true
	})

	added := 0
	var sub gohlgy.Face
	for _, f := range snapshot {
		n := len(f)
		if n < 2 {
			continue
		}
		// enumerate proper non-empty subsets of f by bitmask
		for mask := 1; mask < (1<<uint(n))-1; mask++ {
			sub = sub[:0]
			for p := 0; p < n; p++ {
				if mask&(1<<uint(p)) != 0 {
					sub = append(sub, f[p])
				}
			}
			if c.addFace(sub) {
				added++
			}
		}
	}
	return added
}

// String summarizes the complex.
func (c *Complex) String() string {
	return fmt.Sprintf("Complex{verts: %d, faces: %d, maxDim: %d}", c.numVtx, c.faces.Size(), c.maxDim)
}

// BuildComplex constructs the simplicial complex induced by X:
//
//   - a 0-face per vertex and a 1-face per edge
//   - a 2-face per triangle
//   - per fillable 4-cycle (i,u,j,w): the diagonal edge {i,j} plus the
//     two 2-faces {i,u,j} and {i,j,w}
//
// The result is downward closed by construction and deterministic for a
// given canonical vertex ordering.
func BuildComplex(X *Graph) *Complex {
	c := NewComplex(X.VertexCount())

	for i := 0; i < X.VertexCount(); i++ {
		c.addFace(gohlgy.Face{gohlgy.VtxID(i)})
	}
	for _, e := range X.AppendEdges(nil) {
		c.addFace(gohlgy.Face{e[0], e[1]})
	}
	for _, t := range X.AppendTriangles(nil) {
		c.addFace(gohlgy.Face{t[0], t[1], t[2]})
	}
	for _, q := range X.AppendFillableQuads(nil) {
		c.addFace(gohlgy.Face{q[0], q[2]})
		c.addFace(face3(q[0], q[1], q[2]))
		c.addFace(face3(q[0], q[2], q[3]))
	}
	return c
}

// face3 returns the ascending 2-face on three distinct vertices.
func face3(a, b, c gohlgy.VtxID) gohlgy.Face {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return gohlgy.Face{a, b, c}
}
