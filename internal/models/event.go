package models

import "time"

// TrackingEvent is a validated, normalized submission. It only exists
// between decoding a request and committing it to the store.
type TrackingEvent struct {
	PartnerID       string    `json:"partner_id"`
	CampaignID      string    `json:"campaign_id"`
	VisitorID       string    `json:"visitor_id"`
	InteractionType string    `json:"interaction_type"`
	SourceURL       string    `json:"source_url"`
	DestinationURL  string    `json:"destination_url"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// StoredEvent is a committed TrackingEvent. TrackingEventID and CreatedAt
// are assigned by the store and never change.
type StoredEvent struct {
	TrackingEventID string    `json:"tracking_event_id" db:"tracking_event_id"`
	PartnerID       string    `json:"partner_id" db:"partner_id"`
	CampaignID      string    `json:"campaign_id" db:"campaign_id"`
	VisitorID       string    `json:"visitor_id" db:"visitor_id"`
	InteractionType string    `json:"interaction_type" db:"interaction_type"`
	SourceURL       string    `json:"source_url" db:"source_url"`
	DestinationURL  string    `json:"destination_url" db:"destination_url"`
	RecordedAt      time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Event returns the caller-supplied part of the stored row.
func (s StoredEvent) Event() TrackingEvent {
	return TrackingEvent{
		PartnerID:       s.PartnerID,
		CampaignID:      s.CampaignID,
		VisitorID:       s.VisitorID,
		InteractionType: s.InteractionType,
		SourceURL:       s.SourceURL,
		DestinationURL:  s.DestinationURL,
		RecordedAt:      s.RecordedAt,
	}
}

// EventListResponse is returned by GET /api/v1/tracking/events.
type EventListResponse struct {
	Events []StoredEvent `json:"events"`
	Count  int           `json:"count"`
}

// CountResponse is returned by GET /api/v1/tracking/events/count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// ErrorResponse is the body of every non-2xx response. Field and Reason
// are only set for validation failures.
type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}
