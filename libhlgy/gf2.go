package libhlgy

import (
	"math/bits"
)

// GF2Vec is a bit vector over the two-element field.
type GF2Vec []uint64

func NewGF2Vec(width int) GF2Vec {
	return make(GF2Vec, (width+63)>>6)
}

func (v GF2Vec) Test(i int) bool {
	return v[i>>6]&(1<<uint(i&63)) != 0
}

func (v GF2Vec) Set(i int) {
	v[i>>6] |= 1 << uint(i&63)
}

// Weight returns the number of set bits.
func (v GF2Vec) Weight() int {
	n := 0
	for _, w := range v {
		n += bits.OnesCount64(w)
	}
	return n
}

// GF2Mat is a dense bit matrix over the two-element field.  Each row is
// a GF2Vec over the columns, so elimination is a word-wide xor per row.
type GF2Mat struct {
	NumRows int
	NumCols int
	rows    []GF2Vec
}

// NewGF2Mat returns a zero matrix of the given shape.
func NewGF2Mat(numRows, numCols int) *GF2Mat {
	words := (numCols + 63) >> 6
	backing := make([]uint64, numRows*words)
	m := &GF2Mat{
		NumRows: numRows,
		NumCols: numCols,
		rows:    make([]GF2Vec, numRows),
	}
	for r := 0; r < numRows; r++ {
		m.rows[r] = GF2Vec(backing[r*words : (r+1)*words])
	}
	return m
}

// Set sets entry (r, c) to 1.
func (m *GF2Mat) Set(r, c int) {
	m.rows[r].Set(c)
}

// Test reports entry (r, c).
func (m *GF2Mat) Test(r, c int) bool {
	return m.rows[r].Test(c)
}

func (m *GF2Mat) clone() *GF2Mat {
	cp := NewGF2Mat(m.NumRows, m.NumCols)
	for r, row := range m.rows {
		copy(cp.rows[r], row)
	}
	return cp
}

// rref reduces m in place to reduced row echelon form, returning the
// rank and (via pivots) the pivot column of each pivot row.
func (m *GF2Mat) rref() (rank int, pivots []int) {
	for c := 0; c < m.NumCols && rank < m.NumRows; c++ {
		pr := -1
		for r := rank; r < m.NumRows; r++ {
			if m.rows[r].Test(c) {
				pr = r
				break
			}
		}
		if pr < 0 {
			continue
		}
		m.rows[rank], m.rows[pr] = m.rows[pr], m.rows[rank]
		for r := 0; r < m.NumRows; r++ {
			if r != rank && m.rows[r].Test(c) {
				for w := range m.rows[r] {
					m.rows[r][w] ^= m.rows[rank][w]
				}
			}
		}
		pivots = append(pivots, c)
		rank++
	}
	return rank, pivots
}

// Rank returns the rank of m over Z/2.  m is left unchanged.
func (m *GF2Mat) Rank() int {
	rank, _ := m.clone().rref()
	return rank
}

// Nullspace returns a basis of the right nullspace of m, one vector per
// free column, in ascending free-column order.  m is left unchanged.
func (m *GF2Mat) Nullspace() []GF2Vec {
	cp := m.clone()
	rank, pivots := cp.rref()

	isPivot := make([]bool, m.NumCols)
	for _, pc := range pivots {
		isPivot[pc] = true
	}

	basis := make([]GF2Vec, 0, m.NumCols-rank)
	for fc := 0; fc < m.NumCols; fc++ {
		if isPivot[fc] {
			continue
		}
		v := NewGF2Vec(m.NumCols)
		v.Set(fc)
		for k, pc := range pivots {
			if cp.rows[k].Test(fc) {
				v.Set(pc)
			}
		}
		basis = append(basis, v)
	}
	return basis
}

// MulVec applies m to a column vector of width NumCols, returning a
// vector of width NumRows.
func (m *GF2Mat) MulVec(v GF2Vec) GF2Vec {
	out := NewGF2Vec(m.NumRows)
	for r, row := range m.rows {
		parity := 0
		for w := range row {
			parity ^= bits.OnesCount64(row[w] & v[w])
		}
		if parity&1 == 1 {
			out.Set(r)
		}
	}
	return out
}
