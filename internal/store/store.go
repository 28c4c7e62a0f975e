package store

import (
	"context"

	"github.com/PratikDhanave/tracking-service/internal/models"
)

// Store is the append-only event log. Implementations assign
// tracking_event_id and created_at at insert time and never expose
// update or delete.
type Store interface {
	// Insert commits one event atomically and returns the stored row.
	Insert(ctx context.Context, ev models.TrackingEvent) (models.StoredEvent, error)

	// ListRecent returns up to limit events, newest created_at first,
	// ties broken by reverse insertion order.
	ListRecent(ctx context.Context, limit int) ([]models.StoredEvent, error)

	// Count returns the number of committed events.
	Count(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// Column describes one column of the tracking_events layout.
type Column struct {
	Name string
	Type string
}

// Describer is implemented by stores that can report their table layout.
type Describer interface {
	Columns(ctx context.Context) ([]Column, error)
}

// TableName is the single table backing the event log.
const TableName = "tracking_events"
