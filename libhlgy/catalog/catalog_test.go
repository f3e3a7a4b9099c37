package catalog_test

import (
	"os"
	"path"
	"testing"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy/catalog"
)

var batch = []string{
	"1-2-3-1",
	"1-2-3-4-1",
	"1-2-3-4-5-1",
	"1-2-3-1, 4-5-6-4",
	"1-2-3-4-1, 1-3, 2-4",
}

func TestBasics(t *testing.T) {
	dir, err := os.MkdirTemp("", "junk*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	catCtx := gohlgy.NewCatalogContext()

	cat, err := catalog.OpenCatalog(catCtx, gohlgy.CatalogOpts{
		DbPathName: path.Join(dir, "TestBasics"),
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, Xstr := range batch {
		X, err := libhlgy.NewGraphFromExpr(Xstr)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := X.Homology(gohlgy.Rational); err != nil {
			t.Fatal(err)
		}
		if added := cat.TryAddGraphResults(X); added != 1 {
			t.Fatalf("%q: added %d", Xstr, added)
		}
		if added := cat.TryAddGraphResults(X); added != 0 {
			t.Fatalf("%q: re-added %d", Xstr, added)
		}

		// the second field is a new entry on the same structure
		if _, err := X.Homology(gohlgy.GF2); err != nil {
			t.Fatal(err)
		}
		if added := cat.TryAddGraphResults(X); added != 1 {
			t.Fatalf("%q over Z/2: added %d", Xstr, added)
		}
		X.Reclaim()
	}

	if n := cat.NumGraphs(0); n != int64(len(batch)) {
		t.Fatalf("NumGraphs(0) = %d", n)
	}
	if n := cat.NumGraphs(4); n != 2 {
		t.Fatalf("NumGraphs(4) = %d", n)
	}
	if n := cat.NumGraphs(100); n != 0 {
		t.Fatalf("NumGraphs(100) = %d", n)
	}

	// lookups hand back the stored Betti numbers
	X, err := libhlgy.NewGraphFromExpr("1-2-3-4-5-1")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := cat.LookupResult(X, gohlgy.Rational)
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || (rec.Result() != gohlgy.HomologyResult{H0: 1, H1: 1}) {
		t.Fatalf("got %v", rec)
	}

	// a structure never added misses cleanly
	Xmiss, err := libhlgy.NewGraphFromExpr("1-2")
	if err != nil {
		t.Fatal(err)
	}
	if rec, err := cat.LookupResult(Xmiss, gohlgy.Rational); err != nil || rec != nil {
		t.Fatalf("got %v, %v", rec, err)
	}
	Xmiss.Reclaim()
	X.Reclaim()

	// Select streams every entry back out, both fields
	total := 0
	onHit := make(chan *libhlgy.Graph)
	go cat.Select(gohlgy.DefaultGraphSelector, onHit)
	for X := range onHit {
		if _, _, ok := X.CachedResult(gohlgy.Rational); !ok {
			if _, _, ok := X.CachedResult(gohlgy.GF2); !ok {
				t.Fatal("selected graph carries no result")
			}
		}
		total++
		X.Reclaim()
	}
	if total != 2*len(batch) {
		t.Fatalf("selected %d entries", total)
	}

	// every stored record matches recomputation
	numChecked, numMismatched, err := cat.Verify()
	if err != nil {
		t.Fatal(err)
	}
	if numChecked != int64(2*len(batch)) || numMismatched != 0 {
		t.Fatalf("verify: %d checked, %d mismatched", numChecked, numMismatched)
	}

	catCtx.Close()
	<-catCtx.Done()
}

func TestMemResident(t *testing.T) {
	catCtx := gohlgy.NewCatalogContext()

	cat, err := catalog.OpenCatalog(catCtx, gohlgy.CatalogOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if cat.IsReadOnly() {
		t.Fatal("in-memory catalog is read-only")
	}

	X, err := libhlgy.NewGraphFromExpr("1-2-3-1")
	if err != nil {
		t.Fatal(err)
	}
	defer X.Reclaim()
	if _, err := X.Homology(gohlgy.GF2); err != nil {
		t.Fatal(err)
	}
	if added := cat.TryAddGraphResults(X); added != 1 {
		t.Fatalf("added %d", added)
	}
	rec, err := cat.LookupResult(X, gohlgy.GF2)
	if err != nil || rec == nil {
		t.Fatalf("got %v, %v", rec, err)
	}
	if rec.Name != "1-2-3-1" || rec.NumVerts != 3 || rec.NumEdges != 3 {
		t.Fatalf("got record %v", rec)
	}

	// read-only without a backing db path is rejected up front
	if _, err := catalog.OpenCatalog(catCtx, gohlgy.CatalogOpts{ReadOnly: true}); err == nil {
		t.Fatal("read-only in-memory catalog was accepted")
	}

	catCtx.Close()
	<-catCtx.Done()
}

// State must survive a close/reopen cycle.
func TestReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "junk*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	dbPath := path.Join(dir, "TestReopen")

	catCtx := gohlgy.NewCatalogContext()

	cat, err := catalog.OpenCatalog(catCtx, gohlgy.CatalogOpts{DbPathName: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	X, err := libhlgy.NewGraphFromExpr("1-2-3-4-1")
	if err != nil {
		t.Fatal(err)
	}
	defer X.Reclaim()
	if _, err := X.Homology(gohlgy.Rational); err != nil {
		t.Fatal(err)
	}
	if added := cat.TryAddGraphResults(X); added != 1 {
		t.Fatal("add")
	}
	if err := cat.Close(); err != nil {
		t.Fatal(err)
	}

	cat, err = catalog.OpenCatalog(catCtx, gohlgy.CatalogOpts{
		ReadOnly:   true,
		DbPathName: dbPath,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !cat.IsReadOnly() {
		t.Fatal("not read-only")
	}
	if n := cat.NumGraphs(4); n != 1 {
		t.Fatalf("NumGraphs(4) = %d after reopen", n)
	}
	rec, err := cat.LookupResult(X, gohlgy.Rational)
	if err != nil || rec == nil {
		t.Fatalf("got %v, %v", rec, err)
	}
	if rec.Result() != (gohlgy.HomologyResult{H0: 1}) {
		t.Fatalf("got %v", rec)
	}

	// a read-only catalog refuses new entries
	if added := cat.TryAddGraphResults(X); added != 0 {
		t.Fatal("read-only catalog accepted an add")
	}

	catCtx.Close()
	<-catCtx.Done()
}
