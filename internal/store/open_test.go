package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "memory://", nil)
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, "badger://"+t.TempDir(), nil)
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, s)
	require.NoError(t, s.Close())
}

func TestOpenRejectsBadDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{"no scheme", "tracking_service.db"},
		{"unknown scheme", "sqlite:///tracking_service.db"},
		{"badger without dir", "badger://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.dsn, nil)
			assert.Error(t, err)
		})
	}
}

func TestUnavailableErrorMatching(t *testing.T) {
	cause := errors.New("connection reset")
	err := unavailable("insert", cause)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert")

	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "insert", ue.Op)

	assert.Same(t, err, unavailable("again", err))
	assert.NoError(t, unavailable("noop", nil))
	assert.ErrorIs(t, ErrClosed, ErrUnavailable)
}
