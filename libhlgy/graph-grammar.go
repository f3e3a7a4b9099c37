package libhlgy

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/pkg/errors"
)

// GraphExpr is the parsed form of a graph expression: comma-separated
// walks, each a dash-joined run of 1-based vertex IDs.
//
//	"1-2-3-1"          triangle
//	"1-2-3-4-1, 1-3"   square plus one diagonal
//	"1, 2, 3"          three isolated vertices
//
// Every ID mentioned becomes a vertex and every hop an edge, so a walk
// revisiting an edge is harmless.
type GraphExpr struct {
	Walks []*WalkExpr `parser:"( @@ ( ',' @@ )* )?"`
}

// WalkExpr is one dash-joined run of vertex IDs.
type WalkExpr struct {
	StartVtx int64      `parser:"@Int"`
	Hops     []*HopExpr `parser:"@@*"`
}

// HopExpr is one edge hop to the next vertex of a walk.
type HopExpr struct {
	EndVtx int64 `parser:"'-' @Int"`
}

var graphExprParser = participle.MustBuild[GraphExpr]()

// InitFromExpr builds X from a graph expression.  The expression text
// becomes X's name.
func (X *Graph) InitFromExpr(graphExpr string) error {
	expr, err := graphExprParser.ParseString("", graphExpr)
	if err != nil {
		return errors.Wrapf(err, "bad graph expr %q", graphExpr)
	}

	verts := make(map[string]struct{})
	adj := make(map[string][]string)
	addVtx := func(id int64) (string, error) {
		if id < 1 || id > gohlgy.MaxVtx {
			return "", errors.Wrapf(gohlgy.ErrBadVtxID, "vertex %d in %q", id, graphExpr)
		}
		label := strconv.FormatInt(id, 10)
		verts[label] = struct{}{}
		return label, nil
	}

	for _, walk := range expr.Walks {
		prev, err := addVtx(walk.StartVtx)
		if err != nil {
			return err
		}
		for _, hop := range walk.Hops {
			next, err := addVtx(hop.EndVtx)
			if err != nil {
				return err
			}
			if next == prev {
				return errors.Wrapf(gohlgy.ErrBadEdge, "self edge %s-%s in %q", prev, next, graphExpr)
			}
			adj[prev] = append(adj[prev], next)
			prev = next
		}
	}

	vertList := make([]string, 0, len(verts))
	for label := range verts {
		vertList = append(vertList, label)
	}
	if err := X.InitFromAdjacency(graphExpr, vertList, adj, GraphOpts{}); err != nil {
		return err
	}
	return nil
}

// NewGraphFromExpr is a convenience for NewGraph + InitFromExpr.
func NewGraphFromExpr(graphExpr string) (*Graph, error) {
	X := NewGraph(nil)
	if err := X.InitFromExpr(graphExpr); err != nil {
		X.Reclaim()
		return nil, err
	}
	return X, nil
}
