package catalog

import (
	"bytes"
	"encoding/json"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState (JSON)

	[crossings+1] CanonicEncoding NUL NUL     (UserMeta carries Flag_* bits)
		WireEncoding => WireEncoding          (one entry per stored variant)
		...
	...

Keys lead with the crossing count plus one, so 0x00 stays reserved for the
state entry and iteration naturally runs in crossing order.  Each canonic
identity is a header entry whose key ends in a double NUL; every stored
variant extends the header key with its JSON wire form, so a prefix scan
of a header visits exactly its variants.

The above structure allows to:
	1) enumerate all knots (in crossing order) for a given crossing range
	2) check if a given canonic identity or exact variant has been added
	3) count distinct canonic entries per crossing count (CatalogState)

Next steps / ideas:
	- Canonically renumber arcs before forming the canonic encoding, so
	  diagrams differing only by arc labeling collapse to one entry.
	- Store an R1-reduced variant alongside each header so selects can
	  skip kinked duplicates without re-reducing.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// catalog is a db wrapper for a knot catalog.
type catalog struct {
	ctx        goknot.CatalogContext
	readOnly   bool
	stateDirty bool
	state      goknot.CatalogState
	db         *badger.DB
}

func OpenCatalog(ctx goknot.CatalogContext, opts goknot.CatalogOpts) (goknot.Catalog, error) {
	cat := &catalog{
		ctx: ctx,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(goknot.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}
	cat.readOnly = dbOpts.ReadOnly

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, we consider the catalog ctx blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = 2024
		cat.state.MinorVers = 1
		cat.state.NumKnots = make([]uint64, goknot.MaxCatalogCrossings+1)
	}

	if err == nil && (cat.state.MajorVers != 2024 || cat.state.MinorVers != 1) {
		err = errors.New("catalog version is incompatible")
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) NumKnots(forCrossings int) int64 {
	if forCrossings < 0 || forCrossings >= len(cat.state.NumKnots) {
		return 0
	}
	return int64(cat.state.NumKnots[forCrossings])
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cat.state)
		})
	})
}

func (cat *catalog) flushState() {
	if cat.stateDirty && cat.db != nil {
		err := cat.db.Update(func(txn *badger.Txn) error {
			stateBuf, err := json.Marshal(&cat.state)
			if err != nil {
				return err
			}
			return txn.Set(gCatalogStateKey, stateBuf)
		})
		if err != nil {
			panic(err)
		}
		cat.stateDirty = false
	}
}

func (cat *catalog) Close() error {
	cat.flushState()
	if cat.db != nil {
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
		cat.ctx = nil
	}
	return nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) issueNextCanonic(crossings int) {
	cat.state.NumKnots[crossings]++
	cat.stateDirty = true
}

// formCanonicKey appends the header key for a knot's canonic identity: the
// crossing count lead byte, the canonic encoding, and the double NUL.
func formCanonicKey(key []byte, k goknot.KnotState) ([]byte, error) {
	key = append(key, byte(k.CrossingCount()+1))
	key, err := k.AppendCanonicTo(key)
	if err != nil {
		return nil, err
	}
	key = append(key, 0, 0)
	return key, nil
}

// TryAddKnot adds the given knot if it doesn't already exist (in its current form).
//
// If true is returned, k was not present and was added.
//
// Variants are distinguished by their exact wire form, so the same canonic
// knot stored under two names occupies two variant entries of one header.
func (cat *catalog) TryAddKnot(k goknot.KnotState) bool {
	if cat.readOnly {
		return false
	}
	crossings := k.CrossingCount()
	if crossings < 0 || crossings > goknot.MaxCatalogCrossings {
		return false
	}

	var keyBuf [256]byte
	canonicKey, err := formCanonicKey(keyBuf[:0], k)
	if err != nil {
		return false
	}
	variantKey, err := k.MarshalWire(canonicKey)
	if err != nil {
		return false
	}

	// First see if we have this knot
	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	isNewCanonic := false
	isNewVariant := false
	_, err = txn.Get(canonicKey)
	if err == badger.ErrKeyNotFound {
		isNewCanonic = true
		isNewVariant = true
	} else {
		_, err = txn.Get(variantKey)
		if err == badger.ErrKeyNotFound {
			isNewVariant = true
		}
	}

	// If nothing new, we're done
	if isNewCanonic {
		cat.issueNextCanonic(crossings)
	} else if !isNewVariant {
		return false
	}

	flags := byte(0)
	if k.ComponentCount() == 1 {
		flags |= goknot.Flag_IsKnot
	}
	if k.HasDiagram() {
		flags |= goknot.Flag_HasDiagram
	}

	// Write the new entries.  The variant's value repeats its key's wire
	// suffix so reads stay single-item.
	{
		if isNewCanonic {
			err = txn.SetEntry(badger.NewEntry(canonicKey, nil).WithMeta(flags))
			if err != nil {
				panic(err)
			}
		}
		if isNewVariant {
			txn.Set(variantKey, variantKey[len(canonicKey):])
		}

		err = txn.Commit()
		if err != nil {
			panic(err)
		}
	}

	return isNewVariant
}

// Select will call onHit() with all knots matching the given search criteria.
//
// Enumeration stops when there are no more matches.
func (cat *catalog) Select(sel goknot.KnotSelector, onHit goknot.OnKnotHit) {
	if sel.Match != nil {
		cat.selectByMatch(&sel, onHit)
	} else {
		cat.selectEncodings(&sel, onHit)
	}
}

func loadAndPushKnot(item *badger.Item, onHit goknot.OnKnotHit) error {
	err := item.Value(func(val []byte) error {
		k, err := libknot.DecodeKnot(val)
		if err != nil {
			return err
		}
		onHit <- k
		return nil
	})
	if err != nil {
		panic(err)
	}
	return err
}

func (cat *catalog) selectEncodings(sel *goknot.KnotSelector, onHit goknot.OnKnotHit) {
	minCrossings := sel.MinCrossings
	if minCrossings < 0 {
		minCrossings = 0
	}
	maxCrossings := sel.MaxCrossings
	if maxCrossings > goknot.MaxCatalogCrossings {
		maxCrossings = goknot.MaxCatalogCrossings
	}
	minKey := [1]byte{byte(minCrossings + 1)}
	maxLead := byte(maxCrossings + 1)

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   300,
	})
	defer it.Close()

	wantFlags := byte(0)
	if sel.KnotsOnly {
		wantFlags |= goknot.Flag_IsKnot
	}

	var keyBuf [256]byte
	canonicKey := append(keyBuf[:0], 0xFF, 0xFF) // suffix ensures no match

	for it.Seek(minKey[:]); it.Valid(); {
		curItem := it.Item()
		curKey := curItem.Key()

		// Stop when the crossing count is over the max
		if curKey[0] > maxLead {
			break
		}

		nextCanonic := false

		if bytes.HasPrefix(curKey, canonicKey) {
			loadAndPushKnot(curItem, onHit)

			if sel.UniqueCanonic {
				nextCanonic = true
			}
		} else {
			n := len(curKey)
			if curKey[n-2] != 0 || curKey[n-1] != 0 { // check double NUL suffix
				panic("unexpected catalog entry")
			}

			// A new prefix means a new canonic entry
			canonicKey = append(canonicKey[:0], curKey...)
			meta := curItem.UserMeta()

			if meta&wantFlags != wantFlags {
				nextCanonic = true
			}
		}

		// If this canonic entry is filtered out, skip to the next one
		if nextCanonic {
			canonicKey[len(canonicKey)-1] = 1
			it.Seek(canonicKey)
		} else {
			it.Next()
		}
	}
}

func (cat *catalog) selectByMatch(sel *goknot.KnotSelector, onHit goknot.OnKnotHit) {
	var keyBuf [256]byte
	canonicKey, err := formCanonicKey(keyBuf[:0], sel.Match)
	if err != nil {
		return
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         canonicKey,
	})
	defer it.Close()

	// First item should be the canonic header entry.  If not present, then
	// no stored knot matches.
	it.Rewind()
	if !it.Valid() {
		return
	}

	// Diagnostic -- the first key we match should be the header-only key
	{
		curKey := it.Item().Key()

		klen := len(curKey)
		if curKey[klen-2] != 0 || curKey[klen-1] != 0 { // check double NUL suffix
			panic("expected canonic header entry")
		}
	}

	// Step over the header entry and read each stored variant
	for it.Next(); it.Valid(); it.Next() {
		loadAndPushKnot(it.Item(), onHit)
	}
}
