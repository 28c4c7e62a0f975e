package tracking

import (
	"net/url"
	"strings"
	"time"

	"github.com/PratikDhanave/tracking-service/internal/models"
)

const (
	FieldPartnerID       = "partner_id"
	FieldCampaignID      = "campaign_id"
	FieldVisitorID       = "visitor_id"
	FieldInteractionType = "interaction_type"
	FieldSourceURL       = "source_url"
	FieldDestinationURL  = "destination_url"
	FieldRecordedAt      = "recorded_at"
)

// requiredFields is also the order in which violations are reported.
var requiredFields = []string{
	FieldPartnerID,
	FieldCampaignID,
	FieldVisitorID,
	FieldInteractionType,
	FieldSourceURL,
	FieldDestinationURL,
}

// timestampLayouts accepted for recorded_at. Layouts without a zone are
// read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Decode turns an untyped payload into a TrackingEvent or a
// *ValidationError. Checks run in stages and stop at the first failure:
// presence and type of every required field, then non-emptiness, then URL
// syntax, then recorded_at. Unknown keys are ignored.
//
// A zero RecordedAt in the result means the caller did not supply one.
func Decode(payload map[string]any) (models.TrackingEvent, error) {
	values := make(map[string]string, len(requiredFields))

	for _, field := range requiredFields {
		raw, ok := payload[field]
		if !ok || raw == nil {
			return models.TrackingEvent{}, invalid(field, "field required")
		}
		s, ok := raw.(string)
		if !ok {
			return models.TrackingEvent{}, invalid(field, "must be a string")
		}
		values[field] = s
	}

	for _, field := range requiredFields {
		values[field] = strings.TrimSpace(values[field])
		if values[field] == "" {
			return models.TrackingEvent{}, invalid(field, "must not be empty")
		}
	}

	for _, field := range []string{FieldSourceURL, FieldDestinationURL} {
		if reason := urlProblem(values[field]); reason != "" {
			return models.TrackingEvent{}, invalid(field, reason)
		}
	}

	ev := models.TrackingEvent{
		PartnerID:       values[FieldPartnerID],
		CampaignID:      values[FieldCampaignID],
		VisitorID:       values[FieldVisitorID],
		InteractionType: values[FieldInteractionType],
		SourceURL:       values[FieldSourceURL],
		DestinationURL:  values[FieldDestinationURL],
	}

	if raw, ok := payload[FieldRecordedAt]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return models.TrackingEvent{}, invalid(FieldRecordedAt, "must be a timestamp string")
		}
		ts, err := parseTimestamp(strings.TrimSpace(s))
		if err != nil {
			return models.TrackingEvent{}, invalid(FieldRecordedAt, "must be an RFC3339 timestamp")
		}
		ev.RecordedAt = ts
	}

	return ev, nil
}

// urlProblem returns why raw is not an absolute URL, or "".
func urlProblem(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "must be a valid URL"
	}
	if u.Scheme == "" || u.Host == "" {
		return "must be an absolute URL with scheme and host"
	}
	return ""
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		t, perr := time.Parse(layout, s)
		if perr == nil {
			return t.UTC(), nil
		}
		err = perr
	}
	return time.Time{}, err
}
