package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/tracking-service/internal/models"
	"github.com/PratikDhanave/tracking-service/internal/tracking"
)

// EventsPath is the collection resource for tracking events.
const EventsPath = "/api/v1/tracking/events"

// Submitter ingests one raw payload.
type Submitter interface {
	Submit(ctx context.Context, payload map[string]any) (models.StoredEvent, error)
}

// RegisterEventRoutes registers the ingestion-path endpoint.
//
// POST /api/v1/tracking/events
// - Durable: returns 201 only after the store committed the row
// - 400 names the offending field; 500 never exposes storage detail
func RegisterEventRoutes(r gin.IRoutes, svc Submitter, log *zap.Logger) {
	r.POST(EventsPath, func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON payload"})
			return
		}

		stored, err := svc.Submit(c.Request.Context(), payload)
		if err != nil {
			var ve *tracking.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error:  "validation failed",
					Field:  ve.Field,
					Reason: ve.Reason,
				})
				return
			}

			log.Error("tracking event submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to persist tracking event"})
			return
		}

		c.JSON(http.StatusCreated, stored)
	})
}
