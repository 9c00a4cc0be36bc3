package pyknot

// Copyright 2018 The go-python Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-python/gpython/py"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
	"github.com/knot-systems/knot.SDK/libknot/catalog"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyKnotType       = py.NewType("Knot", "an opaque knot or link diagram")
	pyKnotStreamType = py.NewType("KnotStream", "goknot.KnotStream")
	pyCatalogType    = py.NewType("Catalog", "goknot.Catalog")
	pyWorkspaceType  = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyKnot struct {
	*libknot.Knot
}

func (k pyKnot) Type() *py.Type {
	return pyKnotType
}

func (k pyKnot) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	k.WriteAsString(&writer, goknot.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (k pyKnot) M__repr__() (py.Object, error) {
	return k.M__str__()
}

func getKnotFromKnotObj(obj py.Object) (k pyKnot, err error) {
	if obj.Type().Name != "Knot" {
		err = py.ExceptionNewf(py.TypeError, "expected Knot object (got %v)", obj.Type().Name)
		return
	}
	var attr py.Object
	attr, err = py.GetAttrString(obj, "_knot")
	if err != nil {
		return
	}
	k = attr.(pyKnot)
	return
}

// Arg 1 (str): knot construction expr, e.g. "X-[1,4,2,5] X-[3,6,4,1] X-[5,2,6,3]: (1 2 3 4 5 6)"
func py_NewKnot(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	err := py.LoadTuple(args, []interface{}{&expr})
	if err != nil {
		return nil, err
	}

	k, err := libknot.ParseKnot(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(pyKnot{k}), nil
}

// Arg 1 (str): Rolfsen table name, e.g. "4_1"
func py_LookupKnot(module py.Object, args py.Tuple) (py.Object, error) {
	var name string
	err := py.LoadTuple(args, []interface{}{&name})
	if err != nil {
		return nil, err
	}

	k, err := libknot.Lookup(name)
	if err != nil {
		return nil, py.ExceptionNewf(py.KeyError, "%v", err)
	}
	return py.Object(pyKnot{k}), nil
}

func py_LoadKnot(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}

	k, err := libknot.ReadKnotFile(pathname)
	if err != nil {
		return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
	}
	return py.Object(pyKnot{k}), nil
}

func py_StreamTable(module py.Object, args py.Tuple) (py.Object, error) {
	return wrapKnotStream(libknot.StreamTable()), nil
}

func py_Knot_Expr(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	return py.String(k.AppendExprTo(nil)), nil
}

func py_Knot_DT(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	dt, err := k.DT()
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	entries := make(py.Tuple, len(dt))
	for i, di := range dt {
		entries[i] = py.Int(di)
	}
	return py.Object(entries), nil
}

func py_Knot_NumCrossings(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	return py.Object(py.Int(k.CrossingCount())), nil
}

func py_Knot_NumComponents(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	return py.Object(py.Int(k.ComponentCount())), nil
}

func py_Knot_Writhe(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	w, err := k.Writhe()
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(py.Int(w)), nil
}

func py_Knot_Seifert(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	if k.PD == nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", goknot.ErrMissingRepresentation)
	}
	return py.Object(py.Int(k.PD.SeifertCircles())), nil
}

func py_Knot_BraidIndex(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	if k.PD == nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", goknot.ErrMissingRepresentation)
	}
	return py.Object(py.Int(k.PD.BraidIndexEstimate())), nil
}

// Args (int, int): 1-based component indices
func py_Knot_Linking(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)

	var i, j py.Object
	err := py.ParseTuple(args, "ii", &i, &j)
	if err != nil {
		return nil, err
	}
	if k.PD == nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", goknot.ErrMissingRepresentation)
	}

	lk, err := k.PD.LinkingNumber(int(i.(py.Int)), int(j.(py.Int)))
	if err != nil {
		return nil, py.ExceptionNewf(py.IndexError, "%v", err)
	}
	return py.Object(py.Float(lk)), nil
}

func bracketOptsFromArgs(args py.Tuple) goknot.BracketOpts {
	opts := goknot.DefaultBracketOpts
	if len(args) > 0 {
		if ceiling, ok := args[0].(py.Int); ok {
			opts.MaxCrossings = int(ceiling)
		}
	}
	return opts
}

// Optional arg 1 (int): bracket crossing ceiling
func py_Knot_Jones(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	jones, err := k.Jones(bracketOptsFromArgs(args))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.String(jones.String()), nil
}

// Optional arg 1 (int): bracket crossing ceiling
func py_Knot_Bracket(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	bracket, err := k.Bracket(bracketOptsFromArgs(args))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.String(bracket.AppendAsString(nil, 'A')), nil
}

func py_Knot_Alexander(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	alex, err := k.EstimateAlexander()
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.String(alex.String()), nil
}

func py_Knot_Simplify(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	if k.PD == nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", goknot.ErrMissingRepresentation)
	}
	reduced := libknot.KnotFromDiagram(k.Name, k.PD.SimplifyR1())
	return py.Object(pyKnot{reduced}), nil
}

func py_Knot_SaveTo(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	if err = libknot.WriteKnotFile(pathname, k.Knot); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.None, nil
}

func py_Knot_SaveSVG(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}

	svg, err := k.RenderSVG(context.Background())
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	os.MkdirAll(filepath.Dir(pathname), 0700)
	if err = os.WriteFile(pathname, svg, 0600); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.None, nil
}

func py_Knot_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	k := self.(pyKnot)
	return wrapKnotStream(goknot.StreamKnot(k.Knot)), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx goknot.CatalogContext
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
			CatalogCtx: goknot.NewCatalogContext(),
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

func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := goknot.CatalogOpts{
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
	goknot.Catalog
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
	sel := goknot.DefaultKnotSelector
	if len(args) > 0 {
		err := getKnotSelector(args[0], &sel)
		if err != nil {
			return nil, err
		}
	}

	next := goknot.SelectFromCatalog(cat, sel)
	return wrapKnotStream(next), nil
}

func py_Catalog_NumKnots(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	crossings, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}

	numKnots := cat.NumKnots(int(crossings))
	return py.Int(numKnots), nil
}

type knotStream struct {
	*goknot.KnotStream
}

func (stream knotStream) Type() *py.Type {
	return pyKnotStreamType
}

func wrapKnotStream(stream *goknot.KnotStream) py.Object {
	return py.Object(knotStream{stream})
}

func py_KnotStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(knotStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	var (
		n   int
		err error
	)
	if echo.to == nil {
		n, err = echo.stdout.Write(buf)
	} else {
		n, err = echo.to.Write(buf)
	}
	return n, err
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// See lib/pyknot.py Print() docs
func py_KnotStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(knotStream)
	var pathname string

	opts := goknot.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	// TODO: move this to the Workspace obj so output counter is within the workspace (vs global)
	atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", gOutCount)
	}

	py.LoadAttr(kwargs, "expr", &opts.Expr)
	py.LoadAttr(kwargs, "dt", &opts.DT)
	py.LoadAttr(kwargs, "metrics", &opts.Metrics)
	py.LoadAttr(kwargs, "jones", &opts.Jones)
	py.LoadAttr(kwargs, "alex", &opts.Alex)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(string(pathname), os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapKnotStream(next), nil
}

func py_KnotStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(knotStream)
	attr, err := py.GetAttrString(args[0], "_cat")
	if err != nil {
		return nil, err
	}
	cat := attr.(pyCatalog)
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", errors.New("catalog is in read-only mode"))
	}

	next := stream.AddTo(cat)
	return wrapKnotStream(next), nil
}

func py_KnotStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(knotStream)

	// A memory resident set, auto-closed when the stream closes
	next := stream.DropDupes(libknot.NewKnotSet())
	return wrapKnotStream(next), nil
}

func py_KnotStream_Select(self py.Object, args py.Tuple) (py.Object, error) {
	sel := goknot.DefaultKnotSelector
	err := getKnotSelector(args[0], &sel)
	if err != nil {
		return nil, err
	}
	stream := self.(knotStream)
	next := stream.SelectFromStream(sel)
	return wrapKnotStream(next), nil
}

func init() {

	/////////////////////////////////
	// Knot
	{
		pyKnotType.Dict["Expr"] = py.MustNewMethod("Expr", py_Knot_Expr, 0, "exports this Knot's construction expression")
		pyKnotType.Dict["DT"] = py.MustNewMethod("DT", py_Knot_DT, 0, "exports this Knot's Dowker-Thistlethwaite code as a tuple")
		pyKnotType.Dict["NumCrossings"] = py.MustNewMethod("NumCrossings", py_Knot_NumCrossings, 0, "")
		pyKnotType.Dict["NumComponents"] = py.MustNewMethod("NumComponents", py_Knot_NumComponents, 0, "")
		pyKnotType.Dict["Writhe"] = py.MustNewMethod("Writhe", py_Knot_Writhe, 0, "")
		pyKnotType.Dict["Seifert"] = py.MustNewMethod("Seifert", py_Knot_Seifert, 0, "")
		pyKnotType.Dict["BraidIndex"] = py.MustNewMethod("BraidIndex", py_Knot_BraidIndex, 0, "")
		pyKnotType.Dict["Linking"] = py.MustNewMethod("Linking", py_Knot_Linking, 0, "")
		pyKnotType.Dict["Jones"] = py.MustNewMethod("Jones", py_Knot_Jones, 0, "")
		pyKnotType.Dict["Bracket"] = py.MustNewMethod("Bracket", py_Knot_Bracket, 0, "")
		pyKnotType.Dict["Alexander"] = py.MustNewMethod("Alexander", py_Knot_Alexander, 0, "")
		pyKnotType.Dict["Simplify"] = py.MustNewMethod("Simplify", py_Knot_Simplify, 0, "")
		pyKnotType.Dict["SaveTo"] = py.MustNewMethod("SaveTo", py_Knot_SaveTo, 0, "")
		pyKnotType.Dict["SaveSVG"] = py.MustNewMethod("SaveSVG", py_Knot_SaveSVG, 0, "")
		pyKnotType.Dict["Stream"] = py.MustNewMethod("Stream", py_Knot_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["NumKnots"] = py.MustNewMethod("NumKnots", py_Catalog_NumKnots, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	/////////////////////////////////
	// KnotStream
	{
		pyKnotStreamType.Dict["Go"] = py.MustNewMethod("Go", py_KnotStream_Go, 0, "counts the number of knots output from the KnotStream")
		pyKnotStreamType.Dict["Print"] = py.MustNewMethod("Print", py_KnotStream_Print, 0, "prints each knot from the KnotStream")
		pyKnotStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_KnotStream_AddTo, 0, "")
		pyKnotStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_KnotStream_DropDupes, 0, "")
		pyKnotStreamType.Dict["Select"] = py.MustNewMethod("Select", py_KnotStream_Select, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("NewKnot", py_NewKnot, 0, ""),
			py.MustNewMethod("LookupKnot", py_LookupKnot, 0, ""),
			py.MustNewMethod("LoadKnot", py_LoadKnot, 0, ""),
			py.MustNewMethod("StreamTable", py_StreamTable, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":     py.String(LIB_VERSION),
			"PY_VERSION":      py.String("v3.4.0"),
			"MAX_CROSSINGS":   py.Int(goknot.MaxCatalogCrossings),
			"BRACKET_CEILING": py.Int(goknot.DefaultBracketCeiling),
			"READ_ONLY":       py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pyknot",
				Doc:  "knot invariant engine gpython module",
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

func intAttr(obj py.Object, key string, min, max int64) (int64, error) {
	attr, err := py.GetAttrString(obj, key)
	if err != nil {
		return 0, err
	}
	val, err := py.GetInt(attr)
	if err != nil {
		return 0, err
	}
	intVal := int64(val)
	if intVal < min {
		intVal = min
	}
	if intVal > max {
		intVal = max
	}
	return intVal, nil
}

func getKnotSelector(knot_selector py.Object, sel *goknot.KnotSelector) error {

	minCrossings, err := intAttr(knot_selector, "min_crossings", 0, goknot.MaxCatalogCrossings)
	if err != nil {
		return err
	}
	maxCrossings, err := intAttr(knot_selector, "max_crossings", 0, goknot.MaxCatalogCrossings)
	if err != nil {
		return err
	}
	sel.MinCrossings = int(minCrossings)
	sel.MaxCrossings = int(maxCrossings)

	if err := py.LoadAttr(knot_selector, "knots_only", &sel.KnotsOnly); err != nil {
		return err
	}
	if err := py.LoadAttr(knot_selector, "unique", &sel.UniqueCanonic); err != nil {
		return err
	}

	matchObj, err := py.GetAttrString(knot_selector, "match")
	if err != nil {
		return err
	}

	switch matchObj.(type) {
	case py.NoneType:
		sel.Match = nil
	default:
		k, err := getKnotFromKnotObj(matchObj)
		if err != nil {
			return err
		}
		sel.MinCrossings = k.CrossingCount()
		sel.MaxCrossings = k.CrossingCount()
		sel.Match = k
	}

	return nil
}
