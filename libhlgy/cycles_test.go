package libhlgy_test

import (
	"testing"

	"github.com/hlgy-systems/gohlgy/libhlgy"
)

func TestTriangles(t *testing.T) {
	fixtures := []struct {
		expr string
		tris []libhlgy.Tri
	}{
		{"1-2", nil},
		{"1-2-3-1", []libhlgy.Tri{{0, 1, 2}}},
		{"1-2-3-4-1", nil},
		{"1-2-3-4-5-1", nil},
		{"1-2-3-4-1, 1-3", []libhlgy.Tri{{0, 1, 2}, {0, 2, 3}}},
		// K4: every vertex triple
		{"1-2-3-4-1, 1-3, 2-4", []libhlgy.Tri{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}},
	}

	for _, fix := range fixtures {
		X, err := libhlgy.NewGraphFromExpr(fix.expr)
		if err != nil {
			t.Fatal(err)
		}
		got := X.AppendTriangles(nil)
		if len(got) != len(fix.tris) {
			t.Fatalf("%q: got %d triangles %v, want %d", fix.expr, len(got), got, len(fix.tris))
		}
		for i := range got {
			if got[i] != fix.tris[i] {
				t.Fatalf("%q: triangle %d is %v, want %v", fix.expr, i, got[i], fix.tris[i])
			}
		}
		X.Reclaim()
	}
}

func TestFillableQuads(t *testing.T) {

	// A chordless square is reachable from both of its diagonals but must
	// be reported once, by the first (1,3) since that pair scans first.
	X, err := libhlgy.NewGraphFromExpr("1-2-3-4-1")
	if err != nil {
		t.Fatal(err)
	}
	quads := X.AppendFillableQuads(nil)
	if len(quads) != 1 {
		t.Fatalf("square: got %d quads %v, want 1", len(quads), quads)
	}
	if quads[0] != (libhlgy.Quad{0, 1, 2, 3}) {
		t.Fatalf("square: got quad %v", quads[0])
	}
	X.Reclaim()

	// With the 1-3 chord present only the (2,4) pair is non-adjacent.
	X, err = libhlgy.NewGraphFromExpr("1-2-3-4-1, 1-3")
	if err != nil {
		t.Fatal(err)
	}
	quads = X.AppendFillableQuads(nil)
	if len(quads) != 1 || quads[0] != (libhlgy.Quad{1, 0, 3, 2}) {
		t.Fatalf("chorded square: got quads %v", quads)
	}
	X.Reclaim()

	// C5: every non-adjacent pair shares exactly one common neighbor.
	X, err = libhlgy.NewGraphFromExpr("1-2-3-4-5-1")
	if err != nil {
		t.Fatal(err)
	}
	if quads = X.AppendFillableQuads(nil); len(quads) != 0 {
		t.Fatalf("C5: got quads %v", quads)
	}
	X.Reclaim()

	// K2,3 = 1-3, 1-4, 1-5, 2-3, 2-4, 2-5.  Pair (1,2) has common
	// neighbors {3,4,5} and reports all three squares first; the pairs
	// within {3,4,5} then rediscover the same vertex sets and are dropped.
	X, err = libhlgy.NewGraphFromExpr("1-3-2-4-1, 1-5-2")
	if err != nil {
		t.Fatal(err)
	}
	quads = X.AppendFillableQuads(nil)
	want := []libhlgy.Quad{
		{0, 2, 1, 3},
		{0, 2, 1, 4},
		{0, 3, 1, 4},
	}
	if len(quads) != len(want) {
		t.Fatalf("K2,3: got %d quads %v, want %d", len(quads), quads, len(want))
	}
	for i := range want {
		if quads[i] != want[i] {
			t.Fatalf("K2,3: quad %d is %v, want %v", i, quads[i], want[i])
		}
	}
	X.Reclaim()
}

// The detector must not care how the adjacency input was ordered: the
// canonical vertex ordering fixes the scan.
func TestDetectorInputOrderIndependence(t *testing.T) {
	verts1 := []string{"1", "2", "3", "4", "5", "6"}
	adj1 := map[string][]string{
		"1": {"2", "4", "5"},
		"2": {"3", "6"},
		"3": {"4", "1"},
		"5": {"6"},
	}
	verts2 := []string{"6", "5", "4", "3", "2", "1"}
	adj2 := map[string][]string{
		"6": {"5", "2"},
		"5": {"1"},
		"4": {"3", "1"},
		"3": {"2"},
		"2": {"1"},
		"1": {"3"},
	}

	X1 := libhlgy.NewGraph(nil)
	X2 := libhlgy.NewGraph(nil)
	defer X1.Reclaim()
	defer X2.Reclaim()
	if err := X1.InitFromAdjacency("a", verts1, adj1, libhlgy.GraphOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := X2.InitFromAdjacency("b", verts2, adj2, libhlgy.GraphOpts{}); err != nil {
		t.Fatal(err)
	}

	tris1 := X1.AppendTriangles(nil)
	tris2 := X2.AppendTriangles(nil)
	if len(tris1) != len(tris2) {
		t.Fatalf("triangle counts differ: %v vs %v", tris1, tris2)
	}
	for i := range tris1 {
		if tris1[i] != tris2[i] {
			t.Fatalf("triangle %d differs: %v vs %v", i, tris1[i], tris2[i])
		}
	}

	quads1 := X1.AppendFillableQuads(nil)
	quads2 := X2.AppendFillableQuads(nil)
	if len(quads1) != len(quads2) {
		t.Fatalf("quad counts differ: %v vs %v", quads1, quads2)
	}
	for i := range quads1 {
		if quads1[i] != quads2[i] {
			t.Fatalf("quad %d differs: %v vs %v", i, quads1[i], quads2[i])
		}
	}
}
