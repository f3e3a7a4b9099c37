package libhlgy_test

import (
	"os"
	"path"
	"testing"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy"
)

const collectionJSON = `[
  {
    "name": "Pentagon",
    "vertices": [1, 2, 3, 4, 5],
    "adjacency_list": {
      "1": [2, 5],
      "2": [1, 3],
      "3": [2, 4],
      "4": [3, 5],
      "5": [4, 1]
    }
  },
  {
    "name": "Two Triangles",
    "vertices": ["a", "b", "c", "d", "e", "f"],
    "adjacency_list": {
      "a": ["b", "c"],
      "b": ["c"],
      "d": ["e", "f"],
      "e": ["f"]
    }
  }
]
`

func TestLoadCollection(t *testing.T) {
	dir, err := os.MkdirTemp("", "junk*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	pathname := path.Join(dir, "graphs.json")
	if err := os.WriteFile(pathname, []byte(collectionJSON), 0644); err != nil {
		t.Fatal(err)
	}

	graphs, err := libhlgy.LoadCollection(pathname, libhlgy.GraphOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(graphs) != 2 {
		t.Fatalf("loaded %d graphs", len(graphs))
	}
	if graphs[0].Name() != "Pentagon" || graphs[0].VertexCount() != 5 || graphs[0].EdgeCount() != 5 {
		t.Fatalf("pentagon: %q, %d verts, %d edges",
			graphs[0].Name(), graphs[0].VertexCount(), graphs[0].EdgeCount())
	}
	if graphs[1].VertexCount() != 6 || graphs[1].EdgeCount() != 6 {
		t.Fatal("two triangles misparsed")
	}

	// round trip through SaveCollection
	saved := path.Join(dir, "saved.json")
	if err := libhlgy.SaveCollection(saved, graphs); err != nil {
		t.Fatal(err)
	}
	reloaded, err := libhlgy.LoadCollection(saved, libhlgy.GraphOpts{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range graphs {
		if reloaded[i].Name() != graphs[i].Name() ||
			reloaded[i].VertexCount() != graphs[i].VertexCount() ||
			reloaded[i].EdgeCount() != graphs[i].EdgeCount() {
			t.Fatalf("graph %d did not round trip", i)
		}
		reloaded[i].Reclaim()
		graphs[i].Reclaim()
	}

	if _, err := libhlgy.LoadCollection(path.Join(dir, "no-such.json"), libhlgy.GraphOpts{}); err == nil {
		t.Fatal("missing file was accepted")
	}
	if err := os.WriteFile(pathname, []byte("{ not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := libhlgy.LoadCollection(pathname, libhlgy.GraphOpts{}); err == nil {
		t.Fatal("malformed file was accepted")
	}
}

func TestStreamPipeline(t *testing.T) {
	exprs := []string{
		"1-2-3-1",
		"1-2-3-4-1",
		"1-2-3-4-5-1",
		"3-2-1-3", // same structure as the first, dropped by DropDupes
	}
	graphs := make([]*libhlgy.Graph, len(exprs))
	for i, expr := range exprs {
		graphs[i] = mustExpr(t, expr)
	}

	stream := libhlgy.StreamGraphs(graphs...).
		DropDupes().
		ComputeHomology(gohlgy.Rational, nil)

	results := make(map[string]gohlgy.HomologyResult)
	for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
		if X.HomologyErr() != nil {
			t.Fatal(X.HomologyErr())
		}
		res, _, ok := X.CachedResult(gohlgy.Rational)
		if !ok {
			t.Fatalf("%q has no result", X.Name())
		}
		results[X.Name()] = *res
		X.Reclaim()
	}

	if len(results) != 3 {
		t.Fatalf("got %d graphs through: %v", len(results), results)
	}
	if (results["1-2-3-4-5-1"] != gohlgy.HomologyResult{H0: 1, H1: 1}) {
		t.Fatalf("pentagon: %v", results["1-2-3-4-5-1"])
	}
}
