// Package store persists the REPL's command history in a bbolt database.
package store

import (
	"time"

	bolt "go.etcd.io/bbolt"

	"src.ember.sh/pkg/logutil"
	"src.ember.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend for ember. It is not thread-safe.
// In particular, the store may be closed while another goroutine is still
// accessing the store. To prevent bad things from happening, every time the
// main goroutine spawns a new goroutine to operate on the store, it should
// call wg.Add(1) in the main goroutine before spawning another goroutine, and
// call wg.Done() in the spawned goroutine after the operation is finished.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	st := &dbStore{db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				logger.Printf("failed to %s: %v", name, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close shuts down the store.
func (s *dbStore) Close() error {
	return s.db.Close()
}
