package goknot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// DTCode is a Dowker-Thistlethwaite code: for each odd arc label 1, 3, 5, ...
// in order, the even arc label paired with it at a crossing, negated when the
// crossing sign is negative.
type DTCode []int64

// DTSpec is a LSM binary encoding / symbol of a DTCode.
type DTSpec []byte

// Crossings returns the number of crossings this code describes.
func (dt DTCode) Crossings() int {
	return len(dt)
}

// IsEqual returns whether two codes are identical in length and entries.
func (dt DTCode) IsEqual(other DTCode) bool {
	if len(dt) != len(other) {
		return false
	}
	for i, di := range dt {
		if di != other[i] {
			return false
		}
	}
	return true
}

// AppendDTSpecTo appends a canonical binary encoding of dt to out, returning it as DTSpec.
func (dt DTCode) AppendDTSpecTo(out []byte) DTSpec {
	var scrap [binary.MaxVarintLen64]byte

	key := out
	for _, di := range dt {
		n := binary.PutVarint(scrap[:], di)
		key = append(key, scrap[:n]...)
	}
	return key
}

// InitFromDTSpec assigns this DTCode from a binary encoding made from AppendDTSpecTo()
func (dt *DTCode) InitFromDTSpec(spec DTSpec) error {
	out := (*dt)[:0]
	rdr := bytes.NewReader(spec)

	for {
		entry, err := binary.ReadVarint(rdr)
		if err != nil {
			if err != io.EOF {
				return ErrUnmarshal
			}
			break
		}
		out = append(out, entry)
	}

	*dt = out
	return nil
}

func (dt DTCode) String() string {
	var b strings.Builder
	b.Grow(4 + 4*len(dt))
	b.WriteString("DT[")
	for i, di := range dt {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", di)
	}
	b.WriteByte(']')
	return b.String()
}
