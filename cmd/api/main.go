package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/umajibakery/reservations/internal/cart"
	"github.com/umajibakery/reservations/internal/catalog"
	"github.com/umajibakery/reservations/internal/config"
	"github.com/umajibakery/reservations/internal/httpx"
	kafkax "github.com/umajibakery/reservations/internal/kafka"
	"github.com/umajibakery/reservations/internal/mailer"
	"github.com/umajibakery/reservations/internal/postgres"
	"github.com/umajibakery/reservations/internal/redisx"
	"github.com/umajibakery/reservations/internal/registry"
	"github.com/umajibakery/reservations/internal/reservation"
	"github.com/umajibakery/reservations/internal/session"
)

const cartMaxAge = 6 * time.Hour

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	repo := &registry.Repo{DB: db}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := repo.SeedSamples(ctx); err != nil {
		log.Fatalf("seed registry: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Catalog: repository + change watcher feeding the in-memory cache
	catalogRepo := catalog.NewRedisRepository(rdb)
	cache := catalog.NewCache()
	watcher := &catalog.Watcher{Repo: catalogRepo, Redis: rdb, Interval: cfg.CatalogPoll}
	go cache.Follow(watcher.Start(ctx))

	// Kafka producers
	pCreated := kafkax.NewProducer(cfg.KafkaBrokers, reservation.TopicReservationCreated, 1024)
	pCreated.Start(ctx)
	pCancelled := kafkax.NewProducer(cfg.KafkaBrokers, reservation.TopicReservationCancelled, 1024)
	pCancelled.Start(ctx)

	// Session carts
	carts := cart.NewStore(cartMaxAge)
	go carts.PruneLoop(ctx, 10*time.Minute)

	mail := mailer.New(cfg.MailEndpoint)

	router := httpx.NewRouter()
	ph := &httpx.PublicHandler{
		Catalog:  cache,
		Carts:    carts,
		Producer: pCreated,
		Mailer:   mail,
		Service:  cfg.ServiceName,
	}
	ph.Register(router)
	ah := &httpx.AdminHandler{
		Sessions: &session.Manager{
			Redis:    rdb,
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
			TTL:      redisx.SessionTTL,
		},
		Registry: repo,
		Products: &catalog.Service{Repo: catalogRepo},
		Mailer:   mail,
		Producer: pCancelled,
		Service:  cfg.ServiceName,
	}
	ah.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pCreated.Close()
	pCancelled.Close()
	cancel()
	pCreated.WaitClosed()
	pCancelled.WaitClosed()
}
