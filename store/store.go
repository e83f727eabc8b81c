// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/katalvlaran/cfpq/closure"
	"github.com/katalvlaran/cfpq/core"
	"github.com/katalvlaran/cfpq/grammar"
)

// Sentinel errors.
var (
	// ErrNotFound is returned by Load for an unknown key.
	ErrNotFound = errors.New("store: result not found")

	// ErrNilResult is returned by Save for a nil result.
	ErrNilResult = errors.New("store: nil result")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store: closed")
)

// keyPrefix namespaces result entries inside the database.
const keyPrefix = "closure/"

// recordVersion is bumped when the value layout changes.
const recordVersion = 1

// Config configures a Store.
type Config struct {
	// Path is the database directory. Required unless InMemory is set.
	Path string

	// InMemory keeps everything in RAM; data is lost on Close.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// GCInterval is the value log GC period. Zero disables GC.
	// Ignored for in-memory stores.
	GCInterval time.Duration

	// GCDiscardRatio is the garbage ratio that triggers a value log rewrite.
	GCDiscardRatio float64

	// Logger receives Badger's own log lines and GC events. Nil silences them.
	Logger *slog.Logger
}

// DefaultConfig returns a durable configuration; Path must still be set.
func DefaultConfig() Config {
	return Config{
		SyncWrites:     true,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns a configuration for tests and throwaway caches.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store is a BadgerDB-backed cache of closure results.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool

	stopGC chan struct{}
	doneGC chan struct{}
}

// Open opens or creates the database described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("store: path is required for a persistent store")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{l: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger database: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{db: db, logger: logger}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		if cfg.GCDiscardRatio <= 0 || cfg.GCDiscardRatio >= 1 {
			_ = db.Close()
			return nil, fmt.Errorf("store: gc discard ratio %v not in (0, 1)", cfg.GCDiscardRatio)
		}
		s.stopGC = make(chan struct{})
		s.doneGC = make(chan struct{})
		go s.runGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}

	return s, nil
}

// Close stops background GC and closes the database. Safe to call twice.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.stopGC != nil {
		close(s.stopGC)
		<-s.doneGC
	}

	return s.db.Close()
}

func (s *Store) runGC(interval time.Duration, ratio float64) {
	defer close(s.doneGC)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			err := s.db.RunValueLogGC(ratio)
			switch {
			case err == nil:
				s.logger.Debug("store: value log GC completed")
			case !errors.Is(err, badger.ErrNoRewrite):
				s.logger.Warn("store: value log GC failed", slog.String("error", err.Error()))
			}
		}
	}
}

// record is the stored value layout.
type record struct {
	Version      int                   `json:"version"`
	Passes       int                   `json:"passes"`
	Nodes        int                   `json:"nodes"`
	Nonterminals []grammar.Nonterminal `json:"nonterminals"`
	Triples      []closure.Triple      `json:"triples"`
	SavedAt      time.Time             `json:"saved_at"`
}

func encodeKey(key uuid.UUID) []byte { return []byte(keyPrefix + key.String()) }

// guard rejects calls on a closed store or with a done context.
// The caller must hold s.mu for reading.
func (s *Store) guard(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}

	return ctx.Err()
}

// Save stores res under key, replacing any previous entry.
func (s *Store) Save(ctx context.Context, key uuid.UUID, res *closure.Result) error {
	if res == nil {
		return ErrNilResult
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(ctx); err != nil {
		return err
	}

	val, err := json.Marshal(record{
		Version:      recordVersion,
		Passes:       res.Passes,
		Nodes:        res.Nodes,
		Nonterminals: res.Nonterminals,
		Triples:      res.Triples(),
		SavedAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(encodeKey(key), val)
	}); err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	s.logger.Debug("store: saved result",
		slog.String("key", key.String()),
		slog.Int("triple_count", res.Len()),
	)

	return nil
}

// Load returns the result stored under key.
// Returns ErrNotFound if there is none.
func (s *Store) Load(ctx context.Context, key uuid.UUID) (*closure.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", key, err)
	}
	if rec.Version != recordVersion {
		return nil, fmt.Errorf("store: load %s: unsupported record version %d", key, rec.Version)
	}

	res := closure.NewResult(rec.Triples)
	res.Passes = rec.Passes
	res.Nodes = rec.Nodes
	res.Nonterminals = rec.Nonterminals

	return res, nil
}

// Delete removes the entry under key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key uuid.UUID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(ctx); err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(encodeKey(key))
	}); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}

	return nil
}

// Keys returns the keys of every stored result, sorted by their string form.
func (s *Store) Keys(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	var keys []uuid.UUID
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(keyPrefix)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw := string(it.Item().Key()[len(keyPrefix):])
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("malformed key %q: %w", raw, err)
			}
			keys = append(keys, id)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: keys: %w", err)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	return keys, nil
}

// Count returns the number of stored results.
func (s *Store) Count(ctx context.Context) (int, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return 0, err
	}

	return len(keys), nil
}

// Purge removes every stored result and reports how many there were.
func (s *Store) Purge(ctx context.Context) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(ctx); err != nil {
		return 0, err
	}
	if err := s.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return 0, fmt.Errorf("store: purge: %w", err)
	}
	s.logger.Debug("store: purged results", slog.Int("count", n))

	return n, nil
}

// Cached answers the query from s when possible and otherwise computes it
// with closure.Compute and stores the result. hit reports a cache hit.
// A failed save is logged and does not fail the query.
func Cached(ctx context.Context, s *Store, g *grammar.WeakCNF, graph *core.Graph, opts ...closure.Option) (res *closure.Result, hit bool, err error) {
	key := closure.Fingerprint(g, graph, opts...)
	res, err = s.Load(ctx, key)
	switch {
	case err == nil:
		cacheHits.Inc()
		return res, true, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, err
	}
	cacheMisses.Inc()

	res, err = closure.Compute(ctx, g, graph, opts...)
	if err != nil {
		return nil, false, err
	}
	if err := s.Save(ctx, key, res); err != nil {
		s.logger.Warn("store: caching result failed",
			slog.String("key", key.String()),
			slog.String("error", err.Error()),
		)
	}

	return res, false, nil
}

// badgerLogger routes Badger's printf-style logging into slog.
type badgerLogger struct {
	l *slog.Logger
}

func (b *badgerLogger) Errorf(format string, args ...any) {
	b.l.Error(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (b *badgerLogger) Warningf(format string, args ...any) {
	b.l.Warn(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

// Infof is demoted to debug; Badger reports routine table and compaction work here.
func (b *badgerLogger) Infof(format string, args ...any) {
	b.l.Debug(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (b *badgerLogger) Debugf(format string, args ...any) {
	b.l.Debug(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}
