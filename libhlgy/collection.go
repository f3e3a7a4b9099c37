package libhlgy

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// jsonLabel is a vertex label that may appear in JSON as either a
// string or a bare number; numbers keep their literal text as the label.
type jsonLabel string

func (l *jsonLabel) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = jsonLabel(s)
		return nil
	}
	*l = jsonLabel(data)
	return nil
}

// graphRecord is the wire form of one graph in a collection file.
type graphRecord struct {
	Name      string                 `json:"name"`
	Vertices  []jsonLabel            `json:"vertices"`
	Adjacency map[string][]jsonLabel `json:"adjacency_list"`
}

// LoadCollection reads a JSON array of graph records:
//
//	[ { "name":           "Pentagon",
//	    "vertices":       [1, 2, 3, 4, 5],
//	    "adjacency_list": { "1": [2, 5], "2": [1, 3], ... } }, ... ]
//
// Vertex labels may be JSON strings or numbers.  Ownership of the
// returned graphs passes to the caller.
func LoadCollection(pathname string, opts GraphOpts) ([]*Graph, error) {
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read collection %q", pathname)
	}
	var records []graphRecord
	if err := json.Unmarshal(buf, &records); err != nil {
		return nil, errors.Wrapf(err, "failed to parse collection %q", pathname)
	}

	graphs := make([]*Graph, 0, len(records))
	for i, rec := range records {
		verts := make([]string, len(rec.Vertices))
		for vi, label := range rec.Vertices {
			verts[vi] = string(label)
		}
		adj := make(map[string][]string, len(rec.Adjacency))
		for v, nbrs := range rec.Adjacency {
			row := make([]string, len(nbrs))
			for ni, label := range nbrs {
				row[ni] = string(label)
			}
			adj[v] = row
		}

		X := NewGraph(nil)
		if err := X.InitFromAdjacency(rec.Name, verts, adj, opts); err != nil {
			X.Reclaim()
			for _, Xprev := range graphs {
				Xprev.Reclaim()
			}
			return nil, errors.Wrapf(err, "graph %d (%q) in %q", i, rec.Name, pathname)
		}
		graphs = append(graphs, X)
	}
	return graphs, nil
}

// SaveCollection writes graphs to pathname in the collection format,
// emitting every label as a string and every edge in both adjacency
// rows.
func SaveCollection(pathname string, graphs []*Graph) error {
	records := make([]graphRecord, len(graphs))
	for gi, X := range graphs {
		rec := graphRecord{
			Name:      X.Name(),
			Vertices:  make([]jsonLabel, X.VertexCount()),
			Adjacency: make(map[string][]jsonLabel, X.VertexCount()),
		}
		for vi, label := range X.Labels() {
			rec.Vertices[vi] = jsonLabel(label)
		}
		for _, e := range X.AppendEdges(nil) {
			a, b := X.Label(e[0]), X.Label(e[1])
			rec.Adjacency[a] = append(rec.Adjacency[a], jsonLabel(b))
			rec.Adjacency[b] = append(rec.Adjacency[b], jsonLabel(a))
		}
		records[gi] = rec
	}

	buf, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal collection")
	}
	buf = append(buf, '\n')
	if err := os.WriteFile(pathname, buf, 0644); err != nil {
		return errors.Wrapf(err, "failed to write collection %q", pathname)
	}
	return nil
}

// StreamCollection loads a collection file and streams its graphs.
func StreamCollection(pathname string, opts GraphOpts) (*GraphStream, error) {
	graphs, err := LoadCollection(pathname, opts)
	if err != nil {
		return nil, err
	}
	return StreamGraphs(graphs...), nil
}
