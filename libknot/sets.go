package libknot

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/knot-systems/knot.SDK/goknot"
)

// NewKnotSet returns an empty membership set of canonical knot encodings,
// backed by an in-memory key store.  Callers must Close() it when done.
func NewKnotSet() goknot.KnotSet {
	return &knotSet{}
}

type knotSet struct {
	lsmSet
}

func (set *knotSet) TryAddKnot(k goknot.KnotState) bool {
	var buf [192]byte
	key, err := k.AppendCanonicTo(buf[:0])
	if err != nil {
		return false
	}
	return set.tryAdd(key)
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}

	if err != nil {
		panic(err)
	}

	return added
}

func (set *lsmSet) Close() error {
	if set.db != nil {
		err := set.db.Close()
		set.db = nil
		return err
	}
	return nil
}
