package libhlgy_test

import (
	"errors"
	"testing"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy"
)

func TestGraphFromExpr(t *testing.T) {
	fixtures := []struct {
		expr     string
		numVerts int
		numEdges int
	}{
		{"1", 1, 0},
		{"1, 2, 3", 3, 0},
		{"1-2", 2, 1},
		{"1-2-3-1", 3, 3},
		{"1-2-3-4-1", 4, 4},
		{"1-2-3-4-1, 1-3", 4, 5},
		{"1-2-3-1, 4-5-6-4", 6, 6},
		{"1-2-1-3-1", 3, 2}, // revisited edges collapse
	}

	for _, fix := range fixtures {
		X, err := libhlgy.NewGraphFromExpr(fix.expr)
		if err != nil {
			t.Fatalf("%q: %v", fix.expr, err)
		}
		if X.VertexCount() != fix.numVerts || X.EdgeCount() != fix.numEdges {
			t.Fatalf("%q: got %d verts, %d edges, want %d, %d",
				fix.expr, X.VertexCount(), X.EdgeCount(), fix.numVerts, fix.numEdges)
		}
		X.Reclaim()
	}

	for _, bad := range []string{
		"1-1",
		"1-",
		"-2",
		"1 2",
		"0-1",
	} {
		if _, err := libhlgy.NewGraphFromExpr(bad); err == nil {
			t.Fatalf("expr %q was accepted", bad)
		}
	}
}

func TestGraphFromAdjacency(t *testing.T) {
	verts := []string{"3", "1", "2", "10"}
	adj := map[string][]string{
		"1":  {"2", "3"},
		"2":  {"1"},
		"10": {"3", "zombie"},
	}

	X := libhlgy.NewGraph(nil)
	defer X.Reclaim()

	// lenient: the dangling "zombie" reference is dropped
	if err := X.InitFromAdjacency("T", verts, adj, libhlgy.GraphOpts{}); err != nil {
		t.Fatal(err)
	}
	if X.VertexCount() != 4 || X.EdgeCount() != 3 {
		t.Fatalf("got %d verts, %d edges", X.VertexCount(), X.EdgeCount())
	}

	// numeric labels sort numerically, so "10" comes last
	labels := X.Labels()
	for i, want := range []string{"1", "2", "3", "10"} {
		if labels[i] != want {
			t.Fatalf("label %d: got %q, want %q", i, labels[i], want)
		}
	}

	// adjacency is symmetric even though the input wasn't
	v1, _ := X.VtxOf("1")
	v2, _ := X.VtxOf("2")
	if !X.HasEdge(v1, v2) || !X.HasEdge(v2, v1) {
		t.Fatal("edge 1-2 not symmetric")
	}

	// strict: the same input must fail, naming the bad label
	err := X.InitFromAdjacency("T", verts, adj, libhlgy.GraphOpts{StrictLabels: true})
	if !errors.Is(err, gohlgy.ErrUnknownLabel) {
		t.Fatalf("strict mode: got %v", err)
	}
}

func TestGraphLSM(t *testing.T) {
	X, err := libhlgy.NewGraphFromExpr("1-2-3-4-1, 1-3")
	if err != nil {
		t.Fatal(err)
	}
	defer X.Reclaim()

	Xdec, err := libhlgy.NewGraphFromLSM(X.AppendLSM(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer Xdec.Reclaim()

	if Xdec.VertexCount() != X.VertexCount() || Xdec.EdgeCount() != X.EdgeCount() {
		t.Fatal("LSM round trip mismatch")
	}
	edges := X.AppendEdges(nil)
	edgesDec := Xdec.AppendEdges(nil)
	for i := range edges {
		if edges[i] != edgesDec[i] {
			t.Fatalf("edge %d: got %v, want %v", i, edgesDec[i], edges[i])
		}
	}
}

func TestComponents(t *testing.T) {
	fixtures := []struct {
		expr     string
		numComps int
	}{
		{"1", 1},
		{"1, 2, 3", 3},
		{"1-2-3-1", 1},
		{"1-2-3-1, 4-5-6-4", 2},
		{"1-2, 3-4, 5", 3},
	}
	for _, fix := range fixtures {
		X, err := libhlgy.NewGraphFromExpr(fix.expr)
		if err != nil {
			t.Fatal(err)
		}
		if got := X.NumComponents(); got != fix.numComps {
			t.Fatalf("%q: got %d components, want %d", fix.expr, got, fix.numComps)
		}
		X.Reclaim()
	}
}
