// Package catalog persists homology results in a badger db.
//
// Each entry's key is a graph's canonical structure encoding plus a
// one-byte field suffix, and its value is a serialized HomologyRecord.
// A catalog therefore memoizes (graph, field) computations across runs
// and can stream its contents back out in canonical order.
package catalog

import (
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy"
)

const (
	kMajorVers = 1
	kMinorVers = 0

	// state flushes after this many unflushed mutations (and on Close).
	kStateFlushAfter = 512
)

// kStateKey is a reserved key holding the catalog's own CatalogState.
// No entry key can collide with it: entry keys are at least 4 bytes
// (structure encoding plus the 2-byte field suffix).
var kStateKey = []byte{0x00, 0x00, 0x01}

type catalog struct {
	opts       gohlgy.CatalogOpts
	ctx        gohlgy.CatalogContext
	db         *badger.DB
	mu         sync.Mutex
	state      gohlgy.CatalogState
	stateDirty int
	closed     bool
}

// OpenCatalog opens (or creates) the catalog named by opts.DbPathName,
// attaching it to ctx so host shutdown closes it.  An empty path opens
// an in-memory catalog, which cannot be combined with ReadOnly.
func OpenCatalog(ctx gohlgy.CatalogContext, opts gohlgy.CatalogOpts) (libhlgy.Catalog, error) {
	if opts.ReadOnly && opts.DbPathName == "" {
		return nil, errors.Wrap(gohlgy.ErrBadCatalogParam, "read-only catalog requires a db path")
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.Logger = nil
	dbOpts.DetectConflicts = false
	dbOpts.ReadOnly = opts.ReadOnly
	if opts.DbPathName == "" {
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %q", opts.DbPathName)
	}

	cat := &catalog{
		opts: opts,
		ctx:  ctx,
		db:   db,
	}
	if err := cat.loadState(); err != nil {
		db.Close()
		return nil, err
	}

	if ctx != nil {
		ctx.AttachCatalog(cat)
	}
	return cat, nil
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(kStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &cat.state)
		})
	})
	if err == badger.ErrKeyNotFound {
		cat.state = gohlgy.CatalogState{
			MajorVers: kMajorVers,
			MinorVers: kMinorVers,
		}
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read catalog state of %q", cat.opts.DbPathName)
	}
	if cat.state.MajorVers != kMajorVers {
		return errors.Wrapf(gohlgy.ErrBadCatalogParam,
			"catalog %q has major version %d, expected %d",
			cat.opts.DbPathName, cat.state.MajorVers, kMajorVers)
	}
	return nil
}

// flushState writes the state record.  The caller must hold cat.mu.
func (cat *catalog) flushState() error {
	if cat.opts.ReadOnly || cat.stateDirty == 0 {
		return nil
	}
	buf, err := proto.Marshal(&cat.state)
	if err != nil {
		return errors.Wrap(err, "failed to marshal catalog state")
	}
	err = cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(kStateKey, buf)
	})
	if err != nil {
		return errors.Wrap(err, "failed to write catalog state")
	}
	cat.stateDirty = 0
	return nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.opts.ReadOnly
}

// entryKey appends the db key for (X, field).
func entryKey(io []byte, X *libhlgy.Graph, field gohlgy.Field) []byte {
	key := X.AppendLSM(io)
	return append(key, 0x00, byte(field))
}

// parseEntryKey splits a db key back into its structure encoding and
// field, rejecting reserved and malformed keys.
func parseEntryKey(key []byte) (structure gohlgy.GraphLSM, field gohlgy.Field, ok bool) {
	if len(key) < 4 || key[len(key)-2] != 0x00 {
		return nil, 0, false
	}
	fieldByte := key[len(key)-1]
	if fieldByte >= gohlgy.NumFields {
		return nil, 0, false
	}
	return gohlgy.GraphLSM(key[:len(key)-2]), gohlgy.Field(fieldByte), true
}

// TryAddResult stores rec for (X, rec.Field), returning false iff an
// entry is already present.  Storage failures in a read-write catalog
// are fatal.
func (cat *catalog) TryAddResult(X *libhlgy.Graph, rec *gohlgy.HomologyRecord) bool {
	if cat.opts.ReadOnly || X == nil || rec == nil {
		return false
	}
	field := gohlgy.Field(rec.Field)
	if field < 0 || field >= gohlgy.NumFields {
		return false
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.closed {
		return false
	}

	key := entryKey(nil, X, field)

	added := false
	firstForStructure := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != badger.ErrKeyNotFound {
			return err
		}

		// is any sibling field entry already present?
		firstForStructure = true
		sibling := append([]byte{}, key...)
		for fi := 0; fi < gohlgy.NumFields; fi++ {
			if gohlgy.Field(fi) == field {
				continue
			}
			sibling[len(sibling)-1] = byte(fi)
			if _, err := txn.Get(sibling); err == nil {
				firstForStructure = false
				break
			} else if err != badger.ErrKeyNotFound {
				return err
			}
		}

		val, err := proto.Marshal(rec)
		if err != nil {
			return err
		}
		if err := txn.Set(key, val); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		panic(err)
	}

	if added && firstForStructure {
		numVerts := X.VertexCount()
		for len(cat.state.NumGraphs) <= numVerts {
			cat.state.NumGraphs = append(cat.state.NumGraphs, 0)
		}
		cat.state.NumGraphs[numVerts]++
		cat.stateDirty++
		if cat.stateDirty >= kStateFlushAfter {
			if err := cat.flushState(); err != nil {
				panic(err)
			}
		}
	}
	return added
}

// TryAddGraphResults stores each result attached to X that is not
// already present.
func (cat *catalog) TryAddGraphResults(X *libhlgy.Graph) int {
	if X == nil {
		return 0
	}
	numAdded := 0
	info := X.GetInfo()
	for fi := gohlgy.Field(0); fi < gohlgy.NumFields; fi++ {
		res, elapsedUs, ok := X.CachedResult(fi)
		if !ok {
			continue
		}
		rec := &gohlgy.HomologyRecord{
			Name:      X.Name(),
			NumVerts:  info.NumVerts,
			NumEdges:  info.NumEdges,
			Field:     int32(fi),
			H0:        res.H0,
			H1:        res.H1,
			H2:        res.H2,
			ElapsedUs: elapsedUs,
		}
		if cat.TryAddResult(X, rec) {
			numAdded++
		}
	}
	return numAdded
}

// LookupResult fetches the stored record for (X, field), returning nil
// if no entry exists.
func (cat *catalog) LookupResult(X *libhlgy.Graph, field gohlgy.Field) (*gohlgy.HomologyRecord, error) {
	if X == nil {
		return nil, gohlgy.ErrNilGraph
	}
	if field < 0 || field >= gohlgy.NumFields {
		return nil, gohlgy.ErrBadField
	}

	key := entryKey(nil, X, field)
	var rec *gohlgy.HomologyRecord
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec = &gohlgy.HomologyRecord{}
			return proto.Unmarshal(val, rec)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "catalog lookup of %q failed", X.Name())
	}
	return rec, nil
}

// NumGraphs returns how many distinct structures on numVerts vertices
// have at least one stored result, or the total when numVerts <= 0.
func (cat *catalog) NumGraphs(numVerts int) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if numVerts > 0 {
		if numVerts >= len(cat.state.NumGraphs) {
			return 0
		}
		return cat.state.NumGraphs[numVerts]
	}
	total := int64(0)
	for _, n := range cat.state.NumGraphs {
		total += n
	}
	return total
}

// Select pushes each cataloged graph selected by sel onto onHit in
// ascending structure order, then closes onHit.  Each pushed graph
// carries its stored result and record name; ownership passes to the
// receiver.
func (cat *catalog) Select(sel gohlgy.GraphSelector, onHit libhlgy.OnGraphHit) {
	defer close(onHit)

	cat.db.View(func(txn *badger.Txn) error {
		itOpts := badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
		}
		it := txn.NewIterator(itOpts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			structure, field, ok := parseEntryKey(item.Key())
			if !ok || !sel.SelectsField(field) {
				continue
			}
			X, err := libhlgy.NewGraphFromLSM(structure)
			if err != nil {
				continue
			}
			if !sel.SelectsInfo(X.GetInfo()) {
				X.Reclaim()
				continue
			}

			rec := &gohlgy.HomologyRecord{}
			err = item.Value(func(val []byte) error {
				return proto.Unmarshal(val, rec)
			})
			if err != nil {
				X.Reclaim()
				continue
			}
			X.SetName(rec.Name)
			X.SetCachedResult(field, rec.Result(), rec.ElapsedUs)
			onHit <- X
		}
		return nil
	})
}

// Verify decodes every entry, recomputes its homology over its recorded
// field, and counts mismatches against the stored Betti numbers.
func (cat *catalog) Verify() (numChecked, numMismatched int64, err error) {
	err = cat.db.View(func(txn *badger.Txn) error {
		itOpts := badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
		}
		it := txn.NewIterator(itOpts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			structure, field, ok := parseEntryKey(item.Key())
			if !ok {
				continue
			}

			rec := &gohlgy.HomologyRecord{}
			if err := item.Value(func(val []byte) error {
				return proto.Unmarshal(val, rec)
			}); err != nil {
				return errors.Wrap(err, "bad catalog value")
			}

			X, err := libhlgy.NewGraphFromLSM(structure)
			if err != nil {
				return errors.Wrap(err, "bad catalog key")
			}
			res, _, err := libhlgy.GraphHomology(X, field)
			X.Reclaim()
			if err != nil {
				return err
			}

			numChecked++
			if res != rec.Result() {
				numMismatched++
			}
		}
		return nil
	})
	if err != nil {
		return numChecked, numMismatched, errors.Wrapf(err, "verify of catalog %q failed", cat.opts.DbPathName)
	}
	return numChecked, numMismatched, nil
}

// Close flushes the catalog state and shuts the db down.
func (cat *catalog) Close() error {
	cat.mu.Lock()
	if cat.closed {
		cat.mu.Unlock()
		return nil
	}
	cat.closed = true
	flushErr := cat.flushState()
	cat.mu.Unlock()

	if cat.ctx != nil {
		cat.ctx.DetachCatalog(cat)
	}
	dbErr := cat.db.Close()
	if flushErr != nil {
		return flushErr
	}
	return dbErr
}
