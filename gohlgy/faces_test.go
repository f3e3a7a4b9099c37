package gohlgy_test

import (
	"testing"

	"github.com/hlgy-systems/gohlgy/gohlgy"
)

func TestFaceOrdering(t *testing.T) {

	// Already in canonical order: dimension first, then lexicographic.
	ordered := []gohlgy.Face{
		{0},
		{1},
		{7},
		{0, 1},
		{0, 2},
		{1, 2},
		{0, 1, 2},
		{0, 1, 3},
		{0, 2, 3},
		{1, 2, 3},
	}

	for i, fi := range ordered {
		for j, fj := range ordered {
			got := gohlgy.CompareFaces(fi, fj)
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got != want {
				t.Fatalf("CompareFaces(%v, %v): got %d, want %d", fi, fj, got, want)
			}
		}
	}

	for _, bad := range []gohlgy.Face{
		{},
		{0, 0},
		{2, 1},
		{0, 1, 1},
		{-1},
		{0, 9},
	} {
		if bad.Validate(9) == nil {
			t.Fatalf("Validate accepted %v", bad)
		}
	}
	good := gohlgy.Face{0, 3, 8}
	if err := good.Validate(9); err != nil {
		t.Fatal(err)
	}
	if good.Dim() != 2 {
		t.Fatal("bad dim")
	}
}

func TestFaceDropVtx(t *testing.T) {
	f := gohlgy.Face{2, 5, 7, 11}

	want := []gohlgy.Face{
		{5, 7, 11},
		{2, 7, 11},
		{2, 5, 11},
		{2, 5, 7},
	}
	var scrap gohlgy.Face
	for p := range f {
		scrap = f.DropVtx(p, scrap[:0])
		if gohlgy.CompareFaces(scrap, want[p]) != 0 {
			t.Fatalf("DropVtx(%d): got %v, want %v", p, scrap, want[p])
		}
	}
}

func TestGraphLSMRoundTrip(t *testing.T) {

	// C4 plus a pendant vertex
	edges := [][2]gohlgy.VtxID{
		{0, 1},
		{0, 3},
		{1, 2},
		{2, 3},
		{3, 4},
	}

	enc := gohlgy.AppendGraphLSM(nil, 5, edges)
	nv, got, err := enc.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if nv != 5 || len(got) != len(edges) {
		t.Fatal("round trip mismatch")
	}
	for i := range edges {
		if got[i] != edges[i] {
			t.Fatalf("edge %d: got %v, want %v", i, got[i], edges[i])
		}
	}

	// Truncation must be rejected at any length.
	for cut := 0; cut < len(enc); cut++ {
		if _, _, err := enc[:cut].Decode(); err == nil {
			t.Fatalf("decode accepted truncation at %d", cut)
		}
	}

	// Non-canonical edge order must be rejected.
	swapped := append([][2]gohlgy.VtxID{}, edges...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	enc = gohlgy.AppendGraphLSM(nil, 5, swapped)
	if _, _, err := enc.Decode(); err == nil {
		t.Fatal("decode accepted unsorted edges")
	}

	// Edge endpoint out of range must be rejected.
	enc = gohlgy.AppendGraphLSM(nil, 3, [][2]gohlgy.VtxID{{1, 3}})
	if _, _, err := enc.Decode(); err == nil {
		t.Fatal("decode accepted out-of-range endpoint")
	}
}
