package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Open returns the backend selected by the DSN scheme with its schema in
// place:
//
//	postgres://... or postgresql://...  PostgresStore
//	badger://<dir>                      BadgerStore on disk
//	memory://                           BadgerStore in memory
func Open(ctx context.Context, dsn string, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return nil, fmt.Errorf("store: DSN %q has no scheme", dsn)
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		pg, err := NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		log.Info("event store opened", zap.String("backend", "postgres"))
		return pg, nil

	case "badger":
		if rest == "" {
			return nil, fmt.Errorf("store: badger DSN needs a directory")
		}
		bs, err := OpenBadger(rest)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		log.Info("event store opened", zap.String("backend", "badger"), zap.String("dir", rest))
		return bs, nil

	case "memory":
		bs, err := OpenBadgerInMemory()
		if err != nil {
			return nil, fmt.Errorf("open in-memory store: %w", err)
		}
		log.Info("event store opened", zap.String("backend", "memory"))
		return bs, nil
	}

	return nil, fmt.Errorf("store: unsupported DSN scheme %q", scheme)
}
