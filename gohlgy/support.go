package gohlgy

import (
	"fmt"
	"strings"
	"sync"
)

// String returns the conventional short name of a coefficient field.
func (f Field) String() string {
	switch f {
	case Rational:
		return "Q"
	case GF2:
		return "Z/2"
	}
	return fmt.Sprintf("Field(%d)", int32(f))
}

// ParseField maps user-facing field names onto a Field.  "2" (or "z/2",
// "gf2") selects GF2; "q" (or "rational") selects Rational.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "rational":
		return Rational, nil
	case "2", "z/2", "z2", "gf2", "mod2":
		return GF2, nil
	}
	return Rational, ErrBadField
}

// String prints a result in the standard report form, e.g. "1, 0, 0".
func (res HomologyResult) String() string {
	return fmt.Sprintf("%d, %d, %d", res.H0, res.H1, res.H2)
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[CatalogCloser]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[CatalogCloser]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat CatalogCloser) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat CatalogCloser) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	close(ctx.closing)
	ctx.mu.Lock()
	for cat := range ctx.openCatalogs {
		go cat.Close()
	}
	ctx.mu.Unlock()
}

// DefaultGraphSelector selects every valid graph over every field.
var DefaultGraphSelector = GraphSelector{
	Min: GraphInfo{
		NumVerts:      1,
		NumComponents: 1,
	},
	Max: GraphInfo{
		NumVerts:      MaxVtx,
		NumEdges:      (MaxVtx * (MaxVtx - 1)) / 2,
		NumComponents: MaxVtx,
	},
	AnyField: true,
}

// SelectsInfo reports whether a graph with the given info passes this
// selector's structural bounds.
func (sel *GraphSelector) SelectsInfo(info GraphInfo) bool {
	if info.NumVerts < sel.Min.NumVerts || info.NumEdges < sel.Min.NumEdges || info.NumComponents < sel.Min.NumComponents {
		return false
	}
	if info.NumVerts > sel.Max.NumVerts || info.NumEdges > sel.Max.NumEdges || info.NumComponents > sel.Max.NumComponents {
		return false
	}
	return true
}

// SelectsField reports whether results over the given field pass this
// selector.
func (sel *GraphSelector) SelectsField(f Field) bool {
	return sel.AnyField || sel.Field == f
}
