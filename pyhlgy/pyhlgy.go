package pyhlgy

// Copyright 2018 The go-python Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-python/gpython/py"
	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy/catalog"
	"github.com/hlgy-systems/gohlgy/libhlgy/families"
)

var (
	LIB_VERSION = "v1.2025.1"
)

var (
	pyGraphType       = py.NewType("Graph", "a finite simple graph with homology support")
	pyGraphStreamType = py.NewType("GraphStream", "libhlgy.GraphStream")
	pyCatalogType     = py.NewType("Catalog", "libhlgy.Catalog")
	pyWorkspaceType   = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyGraph struct {
	*libhlgy.Graph
}

func (X pyGraph) Type() *py.Type {
	return pyGraphType
}

func (X pyGraph) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	opts := libhlgy.DefaultPrintOpts
	opts.Edges = true
	X.WriteAsString(&writer, opts)
	return py.String(writer.String()), nil
}

func (X pyGraph) M__repr__() (py.Object, error) {
	return X.M__str__()
}

// Arg 1 (str): graph edge expression, e.g. "1-2-3-1, 2-4"
// Arg 2 (str): optional graph name
func py_Graph(module py.Object, args py.Tuple) (py.Object, error) {
	var expr, name string
	var err error
	if len(args) > 1 {
		err = py.LoadTuple(args, []interface{}{&expr, &name})
	} else {
		err = py.LoadTuple(args, []interface{}{&expr})
	}
	if err != nil {
		return nil, err
	}

	X, err := libhlgy.NewGraphFromExpr(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	if name != "" {
		X.SetName(name)
	}
	return py.Object(pyGraph{X}), nil
}

func py_Graph_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Object(py.Int(X.VertexCount())), nil
}

func py_Graph_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Object(py.Int(X.EdgeCount())), nil
}

func py_Graph_NumComponents(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Object(py.Int(X.NumComponents())), nil
}

// Arg 1 (str): coefficient field, "q" (default) or "2"
func py_Graph_Homology(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)

	field, err := fieldFromArgs(args)
	if err != nil {
		return nil, err
	}
	res, err := X.Homology(field)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Tuple{py.Int(res.H0), py.Int(res.H1), py.Int(res.H2)}, nil
}

func py_Graph_Reduce(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Object(pyGraph{X.Graph.Reduce()}), nil
}

func py_Graph_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)

	// The stream takes ownership of what it carries, so push a copy.
	next := libhlgy.StreamGraph(libhlgy.NewGraph(X.Graph))
	return wrapGraphStream(next), nil
}

func fieldFromArgs(args py.Tuple) (gohlgy.Field, error) {
	if len(args) == 0 {
		return gohlgy.Rational, nil
	}
	fieldStr, ok := args[0].(py.String)
	if !ok {
		return 0, py.ExceptionNewf(py.TypeError, "expected field name str (got %v)", args[0].Type().Name)
	}
	field, err := gohlgy.ParseField(string(fieldStr))
	if err != nil {
		return 0, py.ExceptionNewf(py.ValueError, "unknown coefficient field %q", string(fieldStr))
	}
	return field, nil
}

// Arg 1 (str): path of a JSON graph collection
func py_LoadCollection(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}

	stream, err := libhlgy.StreamCollection(pathname, libhlgy.GraphOpts{})
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return wrapGraphStream(stream), nil
}

// Arg 1 (str): family name: "path", "cycle", "complete", "bipartite", "grid", "petersen"
// Arg 2, 3 (int): family dimensions where the family needs them
func py_Family(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected a family name")
	}
	kind, ok := args[0].(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected family name str (got %v)", args[0].Type().Name)
	}

	var dims [2]int
	for i := 0; i < 2 && i+1 < len(args); i++ {
		d, err := py.GetInt(args[i+1])
		if err != nil {
			return nil, err
		}
		dims[i] = int(d)
		if dims[i] < 0 || dims[i] > gohlgy.MaxVtx {
			return nil, py.ExceptionNewf(py.ValueError, "family dimension %d out of range", dims[i])
		}
	}

	var X *libhlgy.Graph
	switch strings.ToLower(string(kind)) {
	case "path":
		X = families.Path(dims[0])
	case "cycle":
		X = families.Cycle(dims[0])
	case "complete":
		X = families.Complete(dims[0])
	case "bipartite":
		if dims[0]+dims[1] > gohlgy.MaxVtx {
			return nil, py.ExceptionNewf(py.ValueError, "graph family too large")
		}
		X = families.CompleteBipartite(dims[0], dims[1])
	case "grid":
		if dims[0]*dims[1] > gohlgy.MaxVtx {
			return nil, py.ExceptionNewf(py.ValueError, "graph family too large")
		}
		X = families.Grid(dims[0], dims[1])
	case "petersen":
		X = families.Petersen()
	default:
		return nil, py.ExceptionNewf(py.ValueError, "unknown graph family %q", string(kind))
	}
	return py.Object(pyGraph{X}), nil
}

// Arg 1 (int): minimum vertex count
// Arg 2 (int): maximum vertex count
func py_EnumGraphs(module py.Object, args py.Tuple) (py.Object, error) {
	var vMin, vMax py.Object
	err := py.ParseTuple(args, "ii", &vMin, &vMax)
	if err != nil {
		return nil, err
	}

	stream := families.Enum(int(vMin.(py.Int)), int(vMax.(py.Int)))
	return wrapGraphStream(stream), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx gohlgy.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: gohlgy.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): catalog db pathname ("" for memory resident)
// Arg 2 (int): flags, e.g. READ_ONLY
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := gohlgy.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	pyCat := pyCatalog{cat}
	return py.Object(pyCat), nil
}

type pyCatalog struct {
	libhlgy.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	sel := gohlgy.DefaultGraphSelector
	if len(args) > 0 {
		err := getGraphSelector(args[0], &sel)
		if err != nil {
			return nil, err
		}
	}

	next := libhlgy.SelectFromCatalog(cat, sel)
	return wrapGraphStream(next), nil
}

func py_Catalog_NumGraphs(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	Nv, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}

	numGraphs := cat.NumGraphs(int(Nv))
	return py.Int(numGraphs), nil
}

func py_Catalog_Verify(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	numChecked, numMismatched, err := cat.Verify()
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Tuple{py.Int(numChecked), py.Int(numMismatched)}, nil
}

func py_GraphStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(pyGraphStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

// Arg 1 (str): optional block label
// kwargs: label (str), edges (bool), matrix (bool), timings (bool),
// field (str), file (str)
func py_GraphStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(pyGraphStream)
	var pathname string
	var fieldStr string

	opts := libhlgy.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	py.LoadAttr(kwargs, "edges", &opts.Edges)
	py.LoadAttr(kwargs, "matrix", &opts.Matrix)
	py.LoadAttr(kwargs, "timings", &opts.Timings)
	py.LoadAttr(kwargs, "field", &fieldStr)
	py.LoadAttr(kwargs, "file", &pathname)

	if fieldStr != "" {
		field, err := gohlgy.ParseField(fieldStr)
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "unknown coefficient field %q", fieldStr)
		}
		opts.Field = field
	}

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapGraphStream(next), nil
}

type pyGraphStream struct {
	*libhlgy.GraphStream
}

func (stream pyGraphStream) Type() *py.Type {
	return pyGraphStreamType
}

func wrapGraphStream(stream *libhlgy.GraphStream) py.Object {
	return py.Object(pyGraphStream{stream})
}

// Arg 1 (str): coefficient field, "q" (default) or "2"
// Arg 2 (Catalog): optional catalog of already computed results
func py_GraphStream_Homology(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(pyGraphStream)

	field, err := fieldFromArgs(args)
	if err != nil {
		return nil, err
	}

	var cat libhlgy.Catalog
	if len(args) > 1 {
		pyCat, ok := args[1].(pyCatalog)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[1].Type().Name)
		}
		cat = pyCat.Catalog
	}

	next := stream.ComputeHomology(field, cat)
	return wrapGraphStream(next), nil
}

func py_GraphStream_Reduce(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(pyGraphStream)
	next := stream.GraphStream.Reduce()
	return wrapGraphStream(next), nil
}

func py_GraphStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(pyGraphStream)
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected a Catalog argument")
	}
	cat, ok := args[0].(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[0].Type().Name)
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", errors.New("catalog is in read-only mode"))
	}

	next := stream.AddTo(cat)
	return wrapGraphStream(next), nil
}

func py_GraphStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(pyGraphStream)
	next := stream.DropDupes()
	return wrapGraphStream(next), nil
}

func init() {

	/////////////////////////////////
	// Graph
	{
		pyGraphType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_Graph_NumVerts, 0, "")
		pyGraphType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_Graph_NumEdges, 0, "")
		pyGraphType.Dict["NumComponents"] = py.MustNewMethod("NumComponents", py_Graph_NumComponents, 0, "")
		pyGraphType.Dict["Homology"] = py.MustNewMethod("Homology", py_Graph_Homology, 0, "returns (H0, H1, H2) over the given coefficient field")
		pyGraphType.Dict["Reduce"] = py.MustNewMethod("Reduce", py_Graph_Reduce, 0, "returns the domination-reduced form of this Graph")
		pyGraphType.Dict["Stream"] = py.MustNewMethod("Stream", py_Graph_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["NumGraphs"] = py.MustNewMethod("NumGraphs", py_Catalog_NumGraphs, 0, "")
		pyCatalogType.Dict["Verify"] = py.MustNewMethod("Verify", py_Catalog_Verify, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	/////////////////////////////////
	// GraphStream
	{
		pyGraphStreamType.Dict["Go"] = py.MustNewMethod("Go", py_GraphStream_Go, 0, "pulls the stream dry and returns how many graphs came through")
		pyGraphStreamType.Dict["Print"] = py.MustNewMethod("Print", py_GraphStream_Print, 0, "prints each graph from the GraphStream")
		pyGraphStreamType.Dict["Homology"] = py.MustNewMethod("Homology", py_GraphStream_Homology, 0, "")
		pyGraphStreamType.Dict["Reduce"] = py.MustNewMethod("Reduce", py_GraphStream_Reduce, 0, "")
		pyGraphStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_GraphStream_AddTo, 0, "")
		pyGraphStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_GraphStream_DropDupes, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Graph", py_Graph, 0, ""),
			py.MustNewMethod("LoadCollection", py_LoadCollection, 0, ""),
			py.MustNewMethod("Family", py_Family, 0, ""),
			py.MustNewMethod("EnumGraphs", py_EnumGraphs, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"PY_VERSION":  py.String("v3.4.0"),
			"MAX_VTX":     py.Int(gohlgy.MaxVtx),
			"READ_ONLY":   py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "pyhlgy",
				Doc:  "graph homology gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}

// int32Attr reads an int attr, returning missing when the attr is
// absent and clamping everything else into int32 range.
func int32Attr(obj py.Object, key string, missing int32) int32 {
	attr, err := py.GetAttrString(obj, key)
	if err != nil {
		return missing
	}
	val, err := py.GetInt(attr)
	if err != nil {
		return missing
	}
	intVal := int64(val)
	if intVal < 0 {
		intVal = 0
	}
	if intVal > math.MaxInt32 {
		intVal = math.MaxInt32
	}
	return int32(intVal)
}

func exportGraphInfo(graphInfo py.Object, missing gohlgy.GraphInfo) gohlgy.GraphInfo {
	info := gohlgy.GraphInfo{
		NumVerts:      int32Attr(graphInfo, "verts", missing.NumVerts),
		NumEdges:      int32Attr(graphInfo, "edges", missing.NumEdges),
		NumComponents: int32Attr(graphInfo, "parts", missing.NumComponents),
	}
	return info
}

// getGraphSelector reads a python object with optional "min" and "max"
// attrs (each with int attrs "verts", "edges", "parts") and an optional
// "field" attr naming a coefficient field.
func getGraphSelector(graph_selector py.Object, sel *gohlgy.GraphSelector) error {
	if info, err := py.GetAttrString(graph_selector, "min"); err == nil {
		sel.Min = exportGraphInfo(info, sel.Min)
	}
	if info, err := py.GetAttrString(graph_selector, "max"); err == nil {
		sel.Max = exportGraphInfo(info, sel.Max)
	}

	var fieldStr string
	py.LoadAttr(graph_selector, "field", &fieldStr)
	if fieldStr != "" {
		field, err := gohlgy.ParseField(fieldStr)
		if err != nil {
			return py.ExceptionNewf(py.ValueError, "unknown coefficient field %q", fieldStr)
		}
		sel.Field = field
		sel.AnyField = false
	}
	return nil
}
