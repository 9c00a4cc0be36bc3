package goknot

import (
	"io"
)

const (

	// DefaultBracketCeiling bounds the Kauffman bracket state sum, which visits
	// 2^n smoothing states for a diagram of n crossings.
	DefaultBracketCeiling = 20

	// MaxCatalogCrossings is the largest crossing count a catalog key can carry.
	// Catalog keys lead with the crossing count plus one, leaving 0x00 for the
	// catalog's own state entry.
	MaxCatalogCrossings = 254
)

// Catalog entry flags, stored as badger UserMeta on canonic entries.
const (
	Flag_IsKnot     byte = 1 << iota // entry has a single closed component
	Flag_HasDiagram                  // entry carries a full planar diagram
)

// KnotState is the engine's handle on a knot or link as it moves through
// pipeline stages and catalogs.
type KnotState interface {

	// Label returns the display name ("unnamed" when none was given).
	Label() string

	// CrossingCount reports the number of crossings in the best available representation.
	CrossingCount() int

	// ComponentCount reports the number of closed loops (1 for a knot, 0 when unknown).
	ComponentCount() int

	// HasDiagram returns true if this knot carries a full planar diagram
	// rather than a DT code alone.
	HasDiagram() bool

	// AppendCanonicTo appends this knot's canonical LSM encoding, the identity
	// used for catalog keys and dupe detection.
	AppendCanonicTo(out []byte) ([]byte, error)

	// MarshalWire appends this knot's JSON wire form.
	MarshalWire(out []byte) ([]byte, error)

	// WriteAsString writes a one-line summary of this knot per opts.
	WriteAsString(out io.Writer, opts PrintOpts)
}

// OnKnotHit is a callback channel used to return knots meeting a set of selection criteria.
// Ownership of a KnotState travels through the channel.
type OnKnotHit chan<- KnotState

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs to be closed then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a knot Catalog
type CatalogOpts struct {
	DbPathName string // omit for an in-memory db
	ReadOnly   bool   // open in read-only mode
}

type KnotAdder interface {

	// Tries to add the given knot to this catalog or set.
	// If true is returned, the knot did not exist and was added.
	TryAddKnot(k KnotState) bool
}

// KnotSet is a disposable membership set of canonical knot encodings.
type KnotSet interface {
	KnotAdder

	Close() error
}

// Catalog wraps a database of knot encodings and their diagrams.
type Catalog interface {
	KnotAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumKnots returns the number of distinct canonic entries having the given
	// crossing count.  An out of range crossing count returns 0.
	NumKnots(forCrossings int) int64

	// Select fires the given callback channel with each stored knot that meets the selection criteria.
	Select(sel KnotSelector, onHit OnKnotHit)

	Close() error
}

// CatalogState is the catalog's own bookkeeping entry, stored under a reserved key.
type CatalogState struct {
	MajorVers int32    `json:"major"`
	MinorVers int32    `json:"minor"`
	NumKnots  []uint64 `json:"counts"` // canonic entry count indexed by crossing count
}

// KnotSelector is an operator that either selects a given knot or not.
type KnotSelector struct {
	Match         KnotState // Implies a canonical encoding to match exactly
	MinCrossings  int       // lower select bound (inclusive)
	MaxCrossings  int       // upper select bound (inclusive)
	KnotsOnly     bool      // only select single-component entries
	UniqueCanonic bool      // emit at most one variant per canonic entry
}

// DefaultKnotSelector selects every well-formed catalog entry.
var DefaultKnotSelector = KnotSelector{
	MaxCrossings: MaxCatalogCrossings,
}

// PrintOpts specifies what is printed when printing a knot
type PrintOpts struct {
	Label   string // Prefix label
	Expr    bool   // If set, prints the knot construction expr
	DT      bool   // If set, prints the Dowker-Thistlethwaite code
	Metrics bool   // If set, prints crossing count, writhe, and Seifert circle count
	Jones   bool   // If set, prints the Jones polynomial (subject to Bracket.MaxCrossings)
	Alex    bool   // If set, prints the two-term Alexander estimate
	Bracket BracketOpts
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Expr:    true,
	DT:      true,
	Metrics: true,
	Bracket: DefaultBracketOpts,
}

// BracketOpts bounds the cost of a Kauffman bracket state sum.
type BracketOpts struct {
	MaxCrossings int // refuse diagrams above this many crossings
}

// DefaultBracketOpts{}
var DefaultBracketOpts = BracketOpts{
	MaxCrossings: DefaultBracketCeiling,
}
