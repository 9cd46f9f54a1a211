package reservation

import (
	"encoding/json"
	"time"

	"github.com/umajibakery/reservations/internal/catalog"
)

const (
	EventReservationCreated   = "ReservationCreated"
	EventReservationCancelled = "ReservationCancelled"
)

// Envelope wraps every published event with routing metadata; the
// payload stays raw so consumers decode only the types they handle.
type Envelope struct {
	EventID       string          `json:"event_id"` // uuid
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"` // RFC3339
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // reservation ref
	Payload       json.RawMessage `json:"payload"`
}

// CreatedPayload carries a finalized public submission. Note the ref is
// a uuid, not a registry id: the public path does not write the admin
// registry.
type CreatedPayload struct {
	Ref        string          `json:"ref"`
	Channel    catalog.Channel `json:"type"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Items      []Item          `json:"items"`
	TotalPrice int             `json:"total_price"`
	Customer   Customer        `json:"customer"`
}

// CancelledPayload records an admin cancellation after the notice mail
// went out.
type CancelledPayload struct {
	ReservationID int      `json:"reservation_id"`
	Customer      Customer `json:"customer"`
	Reason        string   `json:"reason,omitempty"`
}
