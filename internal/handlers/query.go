package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/tracking-service/internal/metrics"
	"github.com/PratikDhanave/tracking-service/internal/models"
	"github.com/PratikDhanave/tracking-service/internal/store"
)

// EventReader is the read side of the event log.
type EventReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.StoredEvent, error)
	Count(ctx context.Context) (int64, error)
}

// ListLimits bound the limit query parameter.
type ListLimits struct {
	Default int
	Max     int
}

// RegisterQueryRoutes registers the read-path endpoints.
//
// GET /api/v1/tracking/events?limit=N   newest first, limit clamped to Max
// GET /api/v1/tracking/events/count
func RegisterQueryRoutes(r gin.IRoutes, rd EventReader, limits ListLimits, log *zap.Logger, m *metrics.Metrics) {
	storeFailure := func(c *gin.Context, op string, err error) {
		m.IncrementStoreErrors(op)
		log.Error("event store read failed", zap.String("operation", op), zap.Error(err))

		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, models.ErrorResponse{Error: "store unavailable"})
	}

	r.GET(EventsPath, func(c *gin.Context) {
		limit := limits.Default
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be a positive integer"})
				return
			}
			limit = min(n, limits.Max)
		}

		events, err := rd.ListRecent(c.Request.Context(), limit)
		if err != nil {
			storeFailure(c, "list_recent", err)
			return
		}
		if events == nil {
			events = []models.StoredEvent{}
		}

		c.JSON(http.StatusOK, models.EventListResponse{Events: events, Count: len(events)})
	})

	r.GET(EventsPath+"/count", func(c *gin.Context) {
		count, err := rd.Count(c.Request.Context())
		if err != nil {
			storeFailure(c, "count", err)
			return
		}
		c.JSON(http.StatusOK, models.CountResponse{Count: count})
	})
}
