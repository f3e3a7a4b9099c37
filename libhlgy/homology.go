package libhlgy

import (
	"time"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/pkg/errors"
)

// ComplexHomology computes dim H0, H1, H2 of c over the given field,
// validating the complex first: a complex that is not downward closed
// fails with ErrInvalidComplex rather than producing garbage ranks.
//
// For each n, dim H_n = nullity(d_n) - rank(d_n+1), where d_n is the
// dimension-n boundary operator against c's frozen bases and nullity is
// the n-face count minus rank(d_n).  Both ranks are exact: Bareiss
// integer elimination for Rational, word-parallel xor elimination for
// GF2.  The same face bases feed both sides of each subtraction.
func ComplexHomology(c *Complex, field gohlgy.Field) (gohlgy.HomologyResult, error) {
	if field < 0 || field >= gohlgy.NumFields {
		return gohlgy.HomologyResult{}, gohlgy.ErrBadField
	}
	if err := c.Validate(); err != nil {
		return gohlgy.HomologyResult{}, err
	}

	// ranks[n] = rank(d_n); d_0 is the zero map, and any d_n whose
	// column space is empty has rank 0.
	var ranks [gohlgy.MaxFaceDim + 1]int
	for n := 1; n <= gohlgy.MaxFaceDim; n++ {
		if len(c.Basis(n)) == 0 {
			continue
		}
		b, err := NewBoundary(c, n)
		if err != nil {
			return gohlgy.HomologyResult{}, err
		}
		ranks[n] = boundaryRank(b, field)
	}

	return gohlgy.HomologyResult{
		H0: int64(len(c.Basis(0)) - ranks[1]),
		H1: int64(len(c.Basis(1)) - ranks[1] - ranks[2]),
		H2: int64(len(c.Basis(2)) - ranks[2] - ranks[3]),
	}, nil
}

func boundaryRank(b *Boundary, field gohlgy.Field) int {
	if b.NumRows == 0 || b.NumCols == 0 {
		return 0
	}
	if field == gohlgy.GF2 {
		return b.GF2Mat().Rank()
	}
	return b.IntMat().Rank()
}

// GraphHomology builds X's induced complex and computes its homology
// over the given field, returning the elapsed compute time in
// microseconds.
func GraphHomology(X *Graph, field gohlgy.Field) (gohlgy.HomologyResult, int64, error) {
	if X == nil {
		return gohlgy.HomologyResult{}, 0, gohlgy.ErrNilGraph
	}
	start := time.Now()
	c := BuildComplex(X)
	res, err := ComplexHomology(c, field)
	if err != nil {
		return gohlgy.HomologyResult{}, 0, errors.Wrapf(err, "homology of %q", X.Name())
	}
	return res, time.Since(start).Microseconds(), nil
}
