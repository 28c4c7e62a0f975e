package tracking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/tracking-service/internal/metrics"
	"github.com/PratikDhanave/tracking-service/internal/models"
)

// EventStore is the write side of the event log the service depends on.
type EventStore interface {
	Insert(ctx context.Context, ev models.TrackingEvent) (models.StoredEvent, error)
}

// Service validates submissions and commits them to the event store.
type Service struct {
	store   EventStore
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now as the default for a missing recorded_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds the ingestion service. log and m may be nil.
func NewService(st EventStore, log *zap.Logger, m *metrics.Metrics, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		store:   st,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit decodes payload and inserts it exactly once. It returns a
// *ValidationError without touching the store, or a *PersistenceError if
// the insert failed. Failed inserts are not retried.
func (s *Service) Submit(ctx context.Context, payload map[string]any) (models.StoredEvent, error) {
	start := s.now()

	ev, err := Decode(payload)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			s.metrics.IncrementRejected(ve.Field)
			s.log.Info("tracking event rejected",
				zap.String("field", ve.Field),
				zap.String("reason", ve.Reason),
			)
		}
		return models.StoredEvent{}, err
	}

	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = start.UTC()
	}

	stored, err := s.store.Insert(ctx, ev)
	if err != nil {
		s.metrics.IncrementStoreErrors("insert")
		s.log.Error("failed to persist tracking event",
			zap.String("partner_id", ev.PartnerID),
			zap.String("campaign_id", ev.CampaignID),
			zap.Error(err),
		)
		return models.StoredEvent{}, &PersistenceError{Err: err}
	}

	s.metrics.IncrementIngested()
	s.metrics.ObserveIngestDuration(s.now().Sub(start))
	s.log.Debug("tracking event stored",
		zap.String("tracking_event_id", stored.TrackingEventID),
		zap.String("interaction_type", stored.InteractionType),
	)

	return stored, nil
}
