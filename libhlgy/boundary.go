package libhlgy

import (
	"sort"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/pkg/errors"
)

// Boundary is the matrix of the boundary operator taking n-chains to
// (n-1)-chains, expressed against the complex's frozen bases: columns
// are the n-faces, rows the (n-1)-faces, both in canonical order.
//
// Entries are held field-free as +/-1 cells and materialized per
// coefficient field when a rank is needed.
type Boundary struct {
	Dim     int
	NumRows int
	NumCols int
	cells   []boundaryCell
}

type boundaryCell struct {
	row  int32
	col  int32
	sign int8
}

// NewBoundary builds the dimension-n boundary matrix of c.  For each
// n-face (v0 < ... < vn), dropping position p contributes (-1)^p in the
// row of the remaining tuple.  For n == 0 the matrix has zero rows (the
// boundary of a vertex is zero), so its rank is 0 and its nullity is the
// vertex count.
//
// Fails with ErrInvalidComplex if a face's subface is absent.
func NewBoundary(c *Complex, n int) (*Boundary, error) {
	cols := c.Basis(n)
	var rows []gohlgy.Face
	if n > 0 {
		rows = c.Basis(n - 1)
	}
	b := &Boundary{
		Dim:     n,
		NumRows: len(rows),
		NumCols: len(cols),
	}
	if n == 0 {
		return b, nil
	}

	var scrap gohlgy.Face
	for ci, f := range cols {
		for p := range f {
			scrap = f.DropVtx(p, scrap[:0])
			ri := searchFaces(rows, scrap)
			if ri < 0 {
				return nil, errors.Wrapf(gohlgy.ErrInvalidComplex, "face %v is missing subface %v", f, scrap)
			}
			sign := int8(1)
			if p&1 == 1 {
				sign = -1
			}
			b.cells = append(b.cells, boundaryCell{
				row:  int32(ri),
				col:  int32(ci),
				sign: sign,
			})
		}
	}
	return b, nil
}

// searchFaces locates f in a canonically sorted basis, returning -1 if
// absent.
func searchFaces(basis []gohlgy.Face, f gohlgy.Face) int {
	i := sort.Search(len(basis), func(i int) bool {
		return gohlgy.CompareFaces(basis[i], f) >= 0
	})
	if i < len(basis) && gohlgy.CompareFaces(basis[i], f) == 0 {
		return i
	}
	return -1
}

// GF2Mat materializes the matrix over Z/2: every +/-1 folds to 1.
func (b *Boundary) GF2Mat() *GF2Mat {
	m := NewGF2Mat(b.NumRows, b.NumCols)
	for _, cell := range b.cells {
		m.Set(int(cell.row), int(cell.col))
	}
	return m
}

// IntMat materializes the matrix over the integers, whose rank equals
// the rank over Q.
func (b *Boundary) IntMat() *IntMat {
	m := NewIntMat(b.NumRows, b.NumCols)
	for _, cell := range b.cells {
		m.SetInt64(int(cell.row), int(cell.col), int64(cell.sign))
	}
	return m
}

// ApplyInt64 applies the operator to an integer column vector of length
// NumCols, accumulating into a vector of length NumRows.
func (b *Boundary) ApplyInt64(vec []int64, out []int64) []int64 {
	if out == nil {
		out = make([]int64, b.NumRows)
	}
	for i := range out {
		out[i] = 0
	}
	for _, cell := range b.cells {
		out[cell.row] += int64(cell.sign) * vec[cell.col]
	}
	return out
}
