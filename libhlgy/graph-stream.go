package libhlgy

import (
	"bytes"
	"io"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/hlgy-systems/gohlgy/gohlgy"
)

// GraphStream is a pull-based pipeline of graphs.  Each stage method
// spawns a goroutine that pulls from this stream, works, and pushes onto
// the returned stream, so stages compose left to right:
//
//	libhlgy.StreamGraphs(batch...).
//	    Reduce().
//	    ComputeHomology(gohlgy.Rational, cat).
//	    AddTo(cat).
//	    Print(os.Stdout, opts).
//	    PullAll()
//
// Graph ownership travels with the stream: a stage that drops a graph
// reclaims it, and PullAll reclaims everything that reaches the end.
type GraphStream struct {
	Outlet chan *Graph
}

func newStream() *GraphStream {
	return &GraphStream{
		Outlet: make(chan *Graph, 4),
	}
}

// Close closes this stream's outlet.
func (stream *GraphStream) Close() {
	close(stream.Outlet)
}

// PullGraph pulls the next graph, returning nil when the stream is done.
func (stream *GraphStream) PullGraph() *Graph {
	return <-stream.Outlet
}

// PullAll pulls (and reclaims) every remaining graph, returning how many
// there were.
func (stream *GraphStream) PullAll() int {
	count := 0
	for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
		count++
		X.Reclaim()
	}
	return count
}

// StreamGraph streams a single graph.
func StreamGraph(X *Graph) *GraphStream {
	return StreamGraphs(X)
}

// StreamGraphs streams the given graphs in order, taking ownership of
// each.
func StreamGraphs(graphs ...*Graph) *GraphStream {
	stream := newStream()
	go func() {
		for _, X := range graphs {
			stream.Outlet <- X
		}
		stream.Close()
	}()
	return stream
}

// SelectFromCatalog streams every cataloged graph matching sel.
func SelectFromCatalog(cat Catalog, sel gohlgy.GraphSelector) *GraphStream {
	stream := newStream()
	go cat.Select(sel, stream.Outlet)
	return stream
}

// Reduce maps each graph to its domination-reduced form.
func (stream *GraphStream) Reduce() *GraphStream {
	next := newStream()
	go func() {
		for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
			Xr := X.Reduce()
			X.Reclaim()
			next.Outlet <- Xr
		}
		next.Close()
	}()
	return next
}

// ComputeHomology attaches Betti numbers over the given field to each
// graph.  When cat is non-nil, a stored result is used instead of
// recomputing.  A graph whose computation fails keeps flowing with the
// failure recorded on it (see Graph.HomologyErr), so one bad graph
// never stops a batch.
func (stream *GraphStream) ComputeHomology(field gohlgy.Field, cat Catalog) *GraphStream {
	next := newStream()
	go func() {
		for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
			if cat != nil {
				if rec, err := cat.LookupResult(X, field); err == nil && rec != nil {
					X.SetCachedResult(field, rec.Result(), rec.ElapsedUs)
				}
			}
			if _, _, ok := X.CachedResult(field); !ok {
				if _, err := X.Homology(field); err != nil {
					X.hlgyErr = err
				}
			}
			next.Outlet <- X
		}
		next.Close()
	}()
	return next
}

// DropDupes drops graphs whose canonical structure encoding has already
// passed through this stage.
func (stream *GraphStream) DropDupes() *GraphStream {
	next := newStream()
	go func() {
		lookup := redblacktree.NewWith(func(a, b interface{}) int {
			return bytes.Compare(a.(gohlgy.GraphLSM), b.(gohlgy.GraphLSM))
		})
		for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
			key := X.AppendLSM(nil)
			if _, found := lookup.Get(key); found {
				X.Reclaim()
				continue
			}
			lookup.Put(key, nil)
			next.Outlet <- X
		}
		next.Close()
	}()
	return next
}

// AddTo pushes each graph's attached results into adder and passes the
// graph along.
func (stream *GraphStream) AddTo(adder GraphAdder) *GraphStream {
	next := newStream()
	go func() {
		for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
			adder.TryAddGraphResults(X)
			next.Outlet <- X
		}
		next.Close()
	}()
	return next
}

// Print writes each graph per opts, one blank-line-terminated block per
// graph, and passes the graph along.  out is closed when the stream
// drains.
func (stream *GraphStream) Print(out io.WriteCloser, opts PrintOpts) *GraphStream {
	next := newStream()
	go func() {
		for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
			X.WriteAsString(out, opts)
			io.WriteString(out, "\n")
			next.Outlet <- X
		}
		out.Close()
		next.Close()
	}()
	return next
}
