package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/PratikDhanave/tracking-service/internal/models"
)

// eventPrefix namespaces event keys: te/<ulid>. ULIDs sort by time, so a
// reverse prefix scan yields the newest events first.
var eventPrefix = []byte("te/")

// BadgerStore is an embedded event log for single-process deployments and
// local development.
type BadgerStore struct {
	db     *badger.DB
	closed atomic.Bool

	// mu serializes writes so key order matches commit order.
	mu          sync.Mutex
	ulids       *ulidSource
	lastCreated time.Time
	now         func() time.Time
}

var (
	_ Store     = (*BadgerStore)(nil)
	_ Describer = (*BadgerStore)(nil)
)

// BadgerOption configures a BadgerStore.
type BadgerOption func(*BadgerStore)

// WithClock replaces time.Now as the source of created_at.
func WithClock(now func() time.Time) BadgerOption {
	return func(s *BadgerStore) { s.now = now }
}

// OpenBadger opens or creates a store in dir.
func OpenBadger(dir string, opts ...BadgerOption) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir), opts...)
}

// OpenBadgerInMemory opens a store that lives only as long as the process.
func OpenBadgerInMemory(opts ...BadgerOption) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true), opts...)
}

func openBadger(bopts badger.Options, opts ...BadgerOption) (*BadgerStore, error) {
	bopts = bopts.WithLogger(nil)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, unavailable("open", err)
	}

	s := &BadgerStore{
		db:    db,
		ulids: newULIDSource(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Insert assigns the id and created_at and writes the event as a single key.
func (s *BadgerStore) Insert(ctx context.Context, ev models.TrackingEvent) (models.StoredEvent, error) {
	if err := ctx.Err(); err != nil {
		return models.StoredEvent{}, unavailable("insert", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return models.StoredEvent{}, ErrClosed
	}

	createdAt := s.now().UTC()
	if createdAt.Before(s.lastCreated) {
		createdAt = s.lastCreated
	}

	id, err := s.ulids.New(createdAt)
	if err != nil {
		return models.StoredEvent{}, unavailable("insert", fmt.Errorf("generate key: %w", err))
	}

	stored := models.StoredEvent{
		TrackingEventID: uuid.NewString(),
		PartnerID:       ev.PartnerID,
		CampaignID:      ev.CampaignID,
		VisitorID:       ev.VisitorID,
		InteractionType: ev.InteractionType,
		SourceURL:       ev.SourceURL,
		DestinationURL:  ev.DestinationURL,
		RecordedAt:      ev.RecordedAt.UTC(),
		CreatedAt:       createdAt,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return models.StoredEvent{}, fmt.Errorf("encode event: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(eventKey(id.String()), data)
	})
	if err != nil {
		return models.StoredEvent{}, unavailable("insert", err)
	}

	s.lastCreated = createdAt
	return stored, nil
}

// ListRecent scans newest-first inside one read transaction.
func (s *BadgerStore) ListRecent(ctx context.Context, limit int) ([]models.StoredEvent, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if s.closed.Load() {
		return nil, ErrClosed
	}

	events := make([]models.StoredEvent, 0, min(limit, 64))

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = eventPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seekLast(eventPrefix)); it.ValidForPrefix(eventPrefix) && len(events) < limit; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var ev models.StoredEvent
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			})
			if err != nil {
				return fmt.Errorf("read %s: %w", it.Item().Key(), err)
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, unavailable("list recent", err)
	}
	return events, nil
}

// Count walks the event keys without loading values.
func (s *BadgerStore) Count(ctx context.Context) (int64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}

	var n int64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = eventPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(eventPrefix); it.Next() {
			n++
		}
		return ctx.Err()
	})
	if err != nil {
		return 0, unavailable("count", err)
	}
	return n, nil
}

func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return unavailable("ping", ctx.Err())
}

// Columns returns the logical layout each stored value follows.
func (s *BadgerStore) Columns(context.Context) ([]Column, error) {
	return []Column{
		{Name: "tracking_event_id", Type: "uuid"},
		{Name: "partner_id", Type: "text"},
		{Name: "campaign_id", Type: "text"},
		{Name: "visitor_id", Type: "text"},
		{Name: "interaction_type", Type: "text"},
		{Name: "source_url", Type: "text"},
		{Name: "destination_url", Type: "text"},
		{Name: "recorded_at", Type: "timestamp"},
		{Name: "created_at", Type: "timestamp"},
	}, nil
}

// Close waits for an in-flight insert and closes the database. Calling it
// twice returns ErrClosed.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Swap(true) {
		return ErrClosed
	}
	return s.db.Close()
}

func eventKey(id string) []byte {
	key := make([]byte, 0, len(eventPrefix)+len(id))
	key = append(key, eventPrefix...)
	return append(key, id...)
}

// seekLast returns a key sorting after every key under prefix.
func seekLast(prefix []byte) []byte {
	key := make([]byte, 0, len(prefix)+1)
	key = append(key, prefix...)
	return append(key, 0xFF)
}
