package gohlgy

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// CompareFaces orders two faces canonically: lower dimension first, then
// lexicographically by vertex tuple.  Returns -1, 0, or 1.
//
// This single ordering is used everywhere faces are ranked: the face tree
// of a complex, the frozen bases of each chain space, and the row lookup
// when a boundary operator is filled in.
func CompareFaces(a, b Face) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i, ai := range a {
		bi := b[i]
		if ai != bi {
			if ai < bi {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Dim returns the simplex dimension of f: one less than its vertex count.
func (f Face) Dim() int {
	return len(f) - 1
}

// Validate returns an error unless f is a non-empty, strictly ascending
// tuple of VtxIDs in [0, numVtx).
func (f Face) Validate(numVtx int) error {
	if len(f) == 0 {
		return ErrBadFace
	}
	prev := VtxID(-1)
	for _, vi := range f {
		if vi <= prev || int(vi) >= numVtx {
			return ErrBadFace
		}
		prev = vi
	}
	return nil
}

// Clone returns an owned copy of f.
func (f Face) Clone() Face {
	dst := make(Face, len(f))
	copy(dst, f)
	return dst
}

// DropVtx appends to dst the sub-face of f that omits the vertex in
// position p.  Since f is ascending, the result is too.
func (f Face) DropVtx(p int, dst Face) Face {
	dst = append(dst, f[:p]...)
	dst = append(dst, f[p+1:]...)
	return dst
}

// String prints a face as its vertex index tuple, e.g. "(0 2 5)".
func (f Face) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, vi := range f {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(vi)))
	}
	b.WriteByte(')')
	return b.String()
}

// AppendGraphLSM appends the canonical structure encoding of a graph to
// io and returns the result:
//
//	Uvarint(numVerts)
//	Uvarint(numEdges)
//	for each edge (a,b) with a < b, in ascending (a,b) order:
//	    Uvarint(a), Uvarint(b-a)
//
// Two graphs produce the same encoding iff they have the same vertex
// count and the same edge set under their canonical vertex ordering,
// which is what makes a GraphLSM usable as a db key.
func AppendGraphLSM(io []byte, numVerts int, edges [][2]VtxID) GraphLSM {
	var buf [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(buf[:], uint64(numVerts))
	io = append(io, buf[:n]...)
	n = binary.PutUvarint(buf[:], uint64(len(edges)))
	io = append(io, buf[:n]...)

	for _, e := range edges {
		n = binary.PutUvarint(buf[:], uint64(e[0]))
		io = append(io, buf[:n]...)
		n = binary.PutUvarint(buf[:], uint64(e[1]-e[0]))
		io = append(io, buf[:n]...)
	}
	return io
}

// Decode unpacks an encoding produced by AppendGraphLSM, validating that
// it is well formed and canonically ordered.
func (enc GraphLSM) Decode() (numVerts int, edges [][2]VtxID, err error) {
	pos := 0
	next := func() (int64, error) {
		v, n := binary.Uvarint(enc[pos:])
		if n <= 0 {
			return 0, ErrBadEncoding
		}
		pos += n
		return int64(v), nil
	}

	nv, err := next()
	if err != nil {
		return 0, nil, err
	}
	if nv < 0 || nv > MaxVtx {
		return 0, nil, ErrBadEncoding
	}
	ne, err := next()
	if err != nil {
		return 0, nil, err
	}
	if ne < 0 || ne > nv*(nv-1)/2 {
		return 0, nil, ErrBadEncoding
	}

	edges = make([][2]VtxID, 0, ne)
	prev := [2]int64{-1, -1}
	for i := int64(0); i < ne; i++ {
		a, err := next()
		if err != nil {
			return 0, nil, err
		}
		d, err := next()
		if err != nil {
			return 0, nil, err
		}
		b := a + d
		if d < 1 || b >= nv {
			return 0, nil, ErrBadEncoding
		}
		if a < prev[0] || (a == prev[0] && b <= prev[1]) {
			return 0, nil, ErrBadEncoding
		}
		prev = [2]int64{a, b}
		edges = append(edges, [2]VtxID{VtxID(a), VtxID(b)})
	}
	if pos != len(enc) {
		return 0, nil, ErrBadEncoding
	}
	return int(nv), edges, nil
}
