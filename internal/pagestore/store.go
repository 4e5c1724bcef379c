// Package pagestore persists generated landing pages. The backend is
// Postgres when a DSN is configured and a local JSON file otherwise, so
// development runs need no database. Postgres reads go through a small
// LRU cache keyed by page id.
package pagestore

import (
	"database/sql"
	"errors"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned when a page id has no record.
var ErrNotFound = errors.New("pagestore: not found")

const cacheSize = 512

// EnvDSN selects the Postgres backend when set.
const EnvDSN = "PAGE_STORE_PG_DSN"

type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Record

	schemaOnce sync.Once
	schemaErr  error

	recordCache *lru.Cache[string, Record]
}

// New opens a file-backed store at path. The file is loaded lazily on
// first use and written back on every mutation.
func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]Record),
	}
}

// NewPostgres opens a Postgres-backed store and verifies connectivity.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, Record](cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, recordCache: cache}, nil
}

// NewFromEnv picks Postgres when PAGE_STORE_PG_DSN is set and reachable,
// falling back to the file backend at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv(EnvDSN))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the record for a page id.
func (s *Store) Get(pageID string) (Record, error) {
	if s == nil {
		return Record{}, ErrNotFound
	}
	id := strings.TrimSpace(pageID)
	if id == "" {
		return Record{}, ErrNotFound
	}
	if s.db != nil {
		if s.recordCache != nil {
			if cached, ok := s.recordCache.Get(id); ok {
				return cached, nil
			}
		}
		rec, err := s.getDB(id)
		if err != nil {
			return Record{}, err
		}
		if s.recordCache != nil {
			s.recordCache.Add(id, rec)
		}
		return rec, nil
	}
	return s.getFile(id)
}

// Put inserts or replaces a record.
func (s *Store) Put(rec Record) error {
	if s == nil {
		return errors.New("pagestore: store is nil")
	}
	rec = normalizeRecord(rec)
	if rec.PageID == "" {
		return errors.New("pagestore: page id is required")
	}
	if s.db != nil {
		if err := s.putDB(rec); err != nil {
			return err
		}
		if s.recordCache != nil {
			s.recordCache.Remove(rec.PageID)
		}
		return nil
	}
	return s.putFile(rec)
}

// Delete removes a record. Deleting a missing id is not an error.
func (s *Store) Delete(pageID string) error {
	if s == nil {
		return nil
	}
	id := strings.TrimSpace(pageID)
	if id == "" {
		return nil
	}
	if s.db != nil {
		if err := s.deleteDB(id); err != nil {
			return err
		}
		if s.recordCache != nil {
			s.recordCache.Remove(id)
		}
		return nil
	}
	return s.deleteFile(id)
}

// List returns list-view summaries, newest first. An empty ownerID lists
// every page.
func (s *Store) List(ownerID string) ([]Summary, error) {
	if s == nil {
		return nil, nil
	}
	if s.db != nil {
		return s.listDB(strings.TrimSpace(ownerID))
	}
	return s.listFile(strings.TrimSpace(ownerID))
}
