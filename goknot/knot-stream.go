package goknot

import (
	"fmt"
	"io"
	"strings"
)

// KnotStream connects pipeline stages, each a goroutine pumping knots to the next.
//
// Knots are immutable once built, so stages hand off references without copying.
type KnotStream struct {
	Outlet chan KnotState
}

func NewKnotStream() *KnotStream {
	stream := &KnotStream{
		Outlet: make(chan KnotState),
	}
	return stream
}

// StreamKnot returns a stream that emits the single given knot and closes.
func StreamKnot(k KnotState) *KnotStream {
	next := NewKnotStream()

	go func() {
		next.Outlet <- k
		next.Close()
	}()

	return next
}

func (stream *KnotStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *KnotStream) PushKnot(k KnotState) {
	stream.Outlet <- k
}

func (stream *KnotStream) PullKnot() KnotState {
	k := <-stream.Outlet
	return k
}

// PullAll drains this stream, returning the number of knots pulled.
func (stream *KnotStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

func (stream *KnotStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *KnotStream {

	next := &KnotStream{
		Outlet: make(chan KnotState, 1),
	}

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for k := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
			}
			buf.WriteByte(',')

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			k.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- k
		}
		out.Close()
		next.Close()
	}()

	return next
}

// AddTo offers each knot to target, passing through only those newly added.
func (stream *KnotStream) AddTo(target KnotAdder) *KnotStream {
	next := &KnotStream{
		Outlet: make(chan KnotState, 1),
	}

	go func() {
		for k := range stream.Outlet {
			wasAdded := target.TryAddKnot(k)
			if wasAdded {
				next.Outlet <- k
			}
		}
		next.Close()
	}()

	return next
}

// DropDupes passes through only the first knot seen for each canonical encoding.
// The scratch set is closed when the source stream ends.
func (stream *KnotStream) DropDupes(scratch KnotSet) *KnotStream {
	next := &KnotStream{
		Outlet: make(chan KnotState, 1),
	}

	go func() {
		for k := range stream.Outlet {
			if scratch.TryAddKnot(k) {
				next.Outlet <- k
			}
		}
		scratch.Close()
		next.Close()
	}()

	return next
}

func SelectFromCatalog(cat Catalog, sel KnotSelector) *KnotStream {
	next := &KnotStream{
		Outlet: make(chan KnotState, 1),
	}

	onHit := make(chan KnotState, 4)

	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	go func() {
		for k := range onHit {
			if sel.SelectsKnot(k) {
				next.Outlet <- k
			}
		}
		next.Close()
	}()

	return next
}

func (stream *KnotStream) SelectFromStream(sel KnotSelector) *KnotStream {
	next := &KnotStream{
		Outlet: make(chan KnotState, 1),
	}

	go func() {
		for k := range stream.Outlet {
			if sel.SelectsKnot(k) {
				next.Outlet <- k
			}
		}
		next.Close()
	}()

	return next
}
