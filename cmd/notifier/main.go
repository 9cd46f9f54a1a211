package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/umajibakery/reservations/internal/config"
	kafkax "github.com/umajibakery/reservations/internal/kafka"
	"github.com/umajibakery/reservations/internal/mailer"
	"github.com/umajibakery/reservations/internal/notify"
	"github.com/umajibakery/reservations/internal/redisx"
	"github.com/umajibakery/reservations/internal/reservation"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Service{
		Redis:       rdb,
		Mailer:      mailer.New(cfg.MailEndpoint),
		ServiceName: cfg.ServiceName + "-notifier",
	}

	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")

	cCreated := kafkax.NewConsumer(cfg.KafkaBrokers, group, reservation.TopicReservationCreated, workers)
	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, reservation.TopicReservationCreated, workers)
		if err := cCreated.Start(ctx, svc.HandleReservationCreated); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	cCancelled := kafkax.NewConsumer(cfg.KafkaBrokers, group, reservation.TopicReservationCancelled, workers)
	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, reservation.TopicReservationCancelled, workers)
		if err := cCancelled.Start(ctx, svc.HandleReservationCancelled); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down consumers...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
