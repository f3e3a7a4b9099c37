package gohlgy

import (
	"errors"
)

var (
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogClosed   = errors.New("catalog is closed")
	ErrCatalogReadOnly = errors.New("catalog is read-only")

	ErrBadEncoding = errors.New("bad graph encoding")
	ErrBadFace     = errors.New("bad face encoding")

	ErrBadVtxID       = errors.New("vertex ID must be in [1, MaxVtx]")
	ErrBadEdge        = errors.New("bad edge")
	ErrGraphTooBig    = errors.New("graph exceeds MaxVtx vertices")
	ErrNilGraph       = errors.New("nil graph")
	ErrUnknownLabel   = errors.New("adjacency references an unknown vertex label")
	ErrBadField       = errors.New("unrecognized coefficient field")
	ErrInvalidComplex = errors.New("invalid simplicial complex")
)
