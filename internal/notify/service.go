package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/umajibakery/reservations/internal/kafka"
	"github.com/umajibakery/reservations/internal/mailer"
	"github.com/umajibakery/reservations/internal/redisx"
	"github.com/umajibakery/reservations/internal/reservation"
)

// Service consumes reservation events and mails the customer. Event ids
// are deduplicated in Redis so a redelivered message does not mail
// twice.
type Service struct {
	Redis       *redis.Client
	Mailer      *mailer.Client
	ServiceName string
}

// HandleReservationCreated mails the confirmation for a new submission.
func (s *Service) HandleReservationCreated(ctx context.Context, m kafkago.Message) error {
	var env reservation.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != reservation.EventReservationCreated {
		return nil
	}
	if s.seen(ctx, env.EventID) {
		return nil
	}

	p, err := kafkax.UnwrapPayload[reservation.CreatedPayload](env.Payload)
	if err != nil {
		return err
	}
	if err := s.Mailer.SendConfirmation(ctx, p); err != nil {
		return err
	}
	log.Printf("%s: confirmation sent: ref=%s email=%s", s.ServiceName, p.Ref, p.Customer.Email)
	return nil
}

// HandleReservationCancelled records the cancellation. The notice mail
// already went out synchronously from the admin flow, so this only logs.
func (s *Service) HandleReservationCancelled(ctx context.Context, m kafkago.Message) error {
	var env reservation.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != reservation.EventReservationCancelled {
		return nil
	}
	if s.seen(ctx, env.EventID) {
		return nil
	}

	p, err := kafkax.UnwrapPayload[reservation.CancelledPayload](env.Payload)
	if err != nil {
		return err
	}
	log.Printf("%s: reservation cancelled: id=%d reason=%q", s.ServiceName, p.ReservationID, p.Reason)
	return nil
}

// seen marks eventID handled and reports whether it already was.
func (s *Service) seen(ctx context.Context, eventID string) bool {
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", eventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return true
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return false
}
