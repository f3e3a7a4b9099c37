package libhlgy

import (
	"math/big"
)

// IntMat is a dense integer matrix with arbitrary-precision entries.
//
// Boundary matrices are integer, and the rank of an integer matrix over
// Q equals its integer rank, so rational homology needs no rational
// arithmetic at all: fraction-free (Bareiss) elimination keeps every
// intermediate value an exact integer.
type IntMat struct {
	NumRows int
	NumCols int
	cells   []*big.Int // row-major
}

// NewIntMat returns a zero matrix of the given shape.
func NewIntMat(numRows, numCols int) *IntMat {
	m := &IntMat{
		NumRows: numRows,
		NumCols: numCols,
		cells:   make([]*big.Int, numRows*numCols),
	}
	for i := range m.cells {
		m.cells[i] = new(big.Int)
	}
	return m
}

// At returns the entry at (r, c).  The returned value is m's storage.
func (m *IntMat) At(r, c int) *big.Int {
	return m.cells[r*m.NumCols+c]
}

// SetInt64 assigns entry (r, c).
func (m *IntMat) SetInt64(r, c int, v int64) {
	m.cells[r*m.NumCols+c].SetInt64(v)
}

// Rank returns the rank of m by Bareiss fraction-free elimination with
// row pivoting and column skipping.  Every division is exact, so the
// result carries no rounding of any kind.  m is left unchanged.
func (m *IntMat) Rank() int {
	if m.NumRows == 0 || m.NumCols == 0 {
		return 0
	}

	a := make([]*big.Int, len(m.cells))
	for i, v := range m.cells {
		a[i] = new(big.Int).Set(v)
	}
	at := func(r, c int) *big.Int {
		return a[r*m.NumCols+c]
	}
	swapRows := func(r1, r2 int) {
		for c := 0; c < m.NumCols; c++ {
			a[r1*m.NumCols+c], a[r2*m.NumCols+c] = a[r2*m.NumCols+c], a[r1*m.NumCols+c]
		}
	}

	prev := big.NewInt(1)
	head := new(big.Int)
	tmp := new(big.Int)
	tmp2 := new(big.Int)
	rank := 0

	for col := 0; col < m.NumCols && rank < m.NumRows; col++ {
		pr := -1
		for r := rank; r < m.NumRows; r++ {
			if at(r, col).Sign() != 0 {
				pr = r
				break
			}
		}
		if pr < 0 {
			continue
		}
		if pr != rank {
			swapRows(rank, pr)
		}
		pivot := at(rank, col)

		for r := rank + 1; r < m.NumRows; r++ {
			head.Set(at(r, col))
			for c := col + 1; c < m.NumCols; c++ {
				tmp.Mul(pivot, at(r, c))
				tmp2.Mul(head, at(rank, c))
				tmp.Sub(tmp, tmp2)
				at(r, c).Quo(tmp, prev)
			}
			at(r, col).SetInt64(0)
		}
		prev.Set(pivot)
		rank++
	}
	return rank
}
