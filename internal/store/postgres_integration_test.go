//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("tracking"),
		tcpostgres.WithUsername("tracking"),
		tcpostgres.WithPassword("tracking"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx), "schema must be idempotent")
	return s
}

func TestPostgresStore(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	t.Run("insert assigns identity", func(t *testing.T) {
		before := time.Now().Add(-time.Second)

		got, err := s.Insert(ctx, sampleEvent("user123"))
		require.NoError(t, err)

		assert.NotEmpty(t, got.TrackingEventID)
		assert.True(t, got.CreatedAt.After(before))
		assert.Equal(t, "user123", got.VisitorID)
		assert.True(t, got.RecordedAt.Equal(sampleEvent("").RecordedAt))
	})

	t.Run("list recent newest first", func(t *testing.T) {
		var ids []string
		for i := 0; i < 4; i++ {
			got, err := s.Insert(ctx, sampleEvent(fmt.Sprintf("pg-%d", i)))
			require.NoError(t, err)
			ids = append(ids, got.TrackingEventID)
		}

		recent, err := s.ListRecent(ctx, 4)
		require.NoError(t, err)
		require.Len(t, recent, 4)
		for i, ev := range recent {
			assert.Equal(t, ids[len(ids)-1-i], ev.TrackingEventID)
		}

		_, err = s.ListRecent(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("count", func(t *testing.T) {
		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 5, n)
	})

	t.Run("columns", func(t *testing.T) {
		cols, err := s.Columns(ctx)
		require.NoError(t, err)

		names := make([]string, 0, len(cols))
		for _, c := range cols {
			names = append(names, c.Name)
		}
		assert.Contains(t, names, "tracking_event_id")
		assert.Contains(t, names, "created_at")
	})

	t.Run("closed pool is unavailable", func(t *testing.T) {
		require.NoError(t, s.Close())

		_, err := s.Insert(ctx, sampleEvent("late"))
		assert.ErrorIs(t, err, ErrUnavailable)

		_, err = s.Count(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
