// Package families generates the standard graph families used to
// exercise and benchmark the homology engine: paths, cycles, complete
// graphs, complete bipartite graphs, grids, and the Petersen graph.
//
// Every generator uses 1-based decimal vertex labels, so the canonical
// vertex ordering is the natural one.
package families

import (
	"fmt"

	"github.com/hlgy-systems/gohlgy/libhlgy"
)

func mustGraph(X *libhlgy.Graph, err error) *libhlgy.Graph {
	if err != nil {
		panic(err)
	}
	return X
}

// Path returns the path graph on n vertices.
func Path(n int) *libhlgy.Graph {
	if n < 0 {
		n = 0
	}
	edges := make([][2]int, 0, n)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return mustGraph(libhlgy.NewGraphFromEdges(fmt.Sprintf("P%d", n), n, edges))
}

// Cycle returns the cycle graph on n vertices.  For n < 3 there is no
// cycle, so the path on n vertices is returned instead.
func Cycle(n int) *libhlgy.Graph {
	if n < 3 {
		return Path(n)
	}
	edges := make([][2]int, 0, n)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	edges = append(edges, [2]int{1, n})
	return mustGraph(libhlgy.NewGraphFromEdges(fmt.Sprintf("C%d", n), n, edges))
}

// Complete returns the complete graph on n vertices.
func Complete(n int) *libhlgy.Graph {
	if n < 0 {
		n = 0
	}
	edges := make([][2]int, 0, n*(n-1)/2)
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return mustGraph(libhlgy.NewGraphFromEdges(fmt.Sprintf("K%d", n), n, edges))
}

// CompleteBipartite returns the complete bipartite graph with parts of
// size m and n.
func CompleteBipartite(m, n int) *libhlgy.Graph {
	if m < 0 {
		m = 0
	}
	if n < 0 {
		n = 0
	}
	edges := make([][2]int, 0, m*n)
	for i := 1; i <= m; i++ {
		for j := m + 1; j <= m+n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return mustGraph(libhlgy.NewGraphFromEdges(fmt.Sprintf("K%d,%d", m, n), m+n, edges))
}

// Grid returns the rows x cols grid graph.
func Grid(rows, cols int) *libhlgy.Graph {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	at := func(r, c int) int {
		return r*cols + c + 1
	}
	var edges [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				edges = append(edges, [2]int{at(r, c), at(r, c+1)})
			}
			if r+1 < rows {
				edges = append(edges, [2]int{at(r, c), at(r+1, c)})
			}
		}
	}
	return mustGraph(libhlgy.NewGraphFromEdges(fmt.Sprintf("Grid%dx%d", rows, cols), rows*cols, edges))
}

// Petersen returns the Petersen graph: outer 5-cycle 1..5, spokes to
// 6..10, and the inner 5-star stepping by two.
func Petersen() *libhlgy.Graph {
	edges := [][2]int{
		{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 1},
		{1, 6}, {2, 7}, {3, 8}, {4, 9}, {5, 10},
		{6, 8}, {8, 10}, {10, 7}, {7, 9}, {9, 6},
	}
	return mustGraph(libhlgy.NewGraphFromEdges("Petersen", 10, edges))
}

// Enum streams one member of each family per vertex count in
// [vMin, vMax]: the path, the cycle, and the complete graph, plus the
// Petersen graph when 10 is in range.  Order is ascending by vertex
// count, then path, cycle, complete, Petersen.
func Enum(vMin, vMax int) *libhlgy.GraphStream {
	if vMin < 1 {
		vMin = 1
	}
	out := make(chan *libhlgy.Graph, 4)
	stream := &libhlgy.GraphStream{
		Outlet: out,
	}
	go func() {
		for n := vMin; n <= vMax; n++ {
			out <- Path(n)
			if n >= 3 {
				out <- Cycle(n)
				out <- Complete(n)
			}
			if n == 10 {
				out <- Petersen()
			}
		}
		close(out)
	}()
	return stream
}
