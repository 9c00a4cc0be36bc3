package goknot

import (
	"bytes"
	"sync"
)

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
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
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
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

// SelectsKnot is a convenience function used to see if a knot is selected according to a KnotSelector.
func (sel *KnotSelector) SelectsKnot(k KnotState) bool {
	n := k.CrossingCount()
	if n < sel.MinCrossings || n > sel.MaxCrossings {
		return false
	}
	if sel.KnotsOnly && k.ComponentCount() != 1 {
		return false
	}
	if sel.Match != nil && !CanonicallyEqual(sel.Match, k) {
		return false
	}
	return true
}

// CanonicallyEqual reports whether two knots share the same canonical encoding.
// A knot lacking any encodable representation is equal to nothing.
func CanonicallyEqual(a, b KnotState) bool {
	var bufA, bufB [192]byte

	encA, err := a.AppendCanonicTo(bufA[:0])
	if err != nil {
		return false
	}
	encB, err := b.AppendCanonicTo(bufB[:0])
	if err != nil {
		return false
	}
	return bytes.Equal(encA, encB)
}
