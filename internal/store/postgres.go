package store

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PratikDhanave/tracking-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

const storedColumns = `
	tracking_event_id::text AS tracking_event_id,
	partner_id, campaign_id, visitor_id, interaction_type,
	source_url, destination_url, recorded_at, created_at`

// PostgresStore is the durable event log backed by Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, unavailable("connect", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return unavailable("ensure schema", err)
}

// Ping is used by readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return unavailable("ping", p.pool.Ping(ctx))
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

// Insert writes the event in its own transaction. The id and created_at
// come from column defaults, so concurrent inserts never collide.
func (p *PostgresStore) Insert(ctx context.Context, ev models.TrackingEvent) (models.StoredEvent, error) {
	var stored models.StoredEvent

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO tracking_events(
				partner_id, campaign_id, visitor_id, interaction_type,
				source_url, destination_url, recorded_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING`+storedColumns,
			ev.PartnerID, ev.CampaignID, ev.VisitorID, ev.InteractionType,
			ev.SourceURL, ev.DestinationURL, ev.RecordedAt,
		)
		if err != nil {
			return err
		}
		stored, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.StoredEvent])
		return err
	})
	if err != nil {
		return models.StoredEvent{}, unavailable("insert", err)
	}

	return normalizeTimes(stored), nil
}

// ListRecent returns the newest events. A single statement reads one
// snapshot, so rows committed mid-call are either wholly in or out.
func (p *PostgresStore) ListRecent(ctx context.Context, limit int) ([]models.StoredEvent, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := p.pool.Query(ctx, `
		SELECT`+storedColumns+`
		FROM tracking_events
		ORDER BY created_at DESC, seq DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, unavailable("list recent", err)
	}

	events, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.StoredEvent])
	if err != nil {
		return nil, unavailable("list recent", err)
	}
	for i := range events {
		events[i] = normalizeTimes(events[i])
	}
	return events, nil
}

// Count returns the total number of committed events.
func (p *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tracking_events`).Scan(&count)
	if err != nil {
		return 0, unavailable("count", err)
	}
	return count, nil
}

// Columns reports the live table layout from information_schema.
func (p *PostgresStore) Columns(ctx context.Context) ([]Column, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position
	`, TableName)
	if err != nil {
		return nil, unavailable("describe", err)
	}

	cols, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Column, error) {
		var c Column
		err := row.Scan(&c.Name, &c.Type)
		return c, err
	})
	if err != nil {
		return nil, unavailable("describe", err)
	}
	if len(cols) == 0 {
		return nil, unavailable("describe", errors.New("table "+TableName+" not found"))
	}
	return cols, nil
}

func normalizeTimes(ev models.StoredEvent) models.StoredEvent {
	ev.RecordedAt = ev.RecordedAt.UTC()
	ev.CreatedAt = ev.CreatedAt.UTC()
	return ev
}
