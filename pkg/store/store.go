// Package store keeps named graph snapshots in a badger key-value store.
// Values are the graph's JSON encoding, so indices survive a round trip.
package store

import (
	"runtime"
	"sort"
	"strings"

	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// Errors
var (
	ErrNotFound = errors.New("snapshot not found")
	ErrBadName  = errors.New("bad snapshot name")
	ErrBadParam = errors.New("bad store parameter")
)

// docPrefix namespaces snapshot keys.
const docPrefix = "doc/"

// Options configures Open.
type Options struct {
	// Path is the badger directory. Empty keeps everything in memory.
	Path string
	// ReadOnly opens an existing directory without write access.
	ReadOnly bool
}

// DefaultOptions returns an in-memory configuration.
func DefaultOptions() Options {
	return Options{}
}

// Store is a set of named graph snapshots. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens or creates a store.
func Open(opts Options) (*Store, error) {
	dbOpts := badger.DefaultOptions(opts.Path)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.Logger = nil

	// Badger on windows does not support read-only mode.
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if opts.Path == "" {
		if opts.ReadOnly {
			return nil, errors.Wrap(ErrBadParam, "Path must be specified for a read-only store")
		}
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "store: open")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func docKey(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, "\x00") {
		return nil, errors.Wrapf(ErrBadName, "%q", name)
	}
	return []byte(docPrefix + name), nil
}

// Save writes g under name, replacing any earlier snapshot.
func (s *Store) Save(name string, g *graph.Graph) error {
	key, err := docKey(name)
	if err != nil {
		return err
	}
	val, err := g.MarshalJSON()
	if err != nil {
		return errors.Wrapf(err, "store: encode %q", name)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

// Load returns the snapshot saved under name.
func (s *Store) Load(name string) (*graph.Graph, error) {
	key, err := docKey(name)
	if err != nil {
		return nil, err
	}
	var val []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "store: load %q", name)
	}

	g := graph.New()
	if err := g.UnmarshalJSON(val); err != nil {
		return nil, errors.Wrapf(err, "store: decode %q", name)
	}
	return g, nil
}

// Delete removes the snapshot saved under name.
func (s *Store) Delete(name string) error {
	key, err := docKey(name)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return errors.Wrapf(ErrNotFound, "%q", name)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// List returns the saved snapshot names in ascending order.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         []byte(docPrefix),
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), docPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "store: list")
	}
	sort.Strings(names)
	return names, nil
}
