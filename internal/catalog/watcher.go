package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umajibakery/reservations/internal/redisx"
)

// Watcher re-derives the catalog on every change notification and,
// as a fallback, on a fixed polling interval. Any external mutation
// becomes visible within one interval even if the publish was lost;
// cross-process mutations surface immediately via pub/sub.
type Watcher struct {
	Repo     Repository
	Redis    *redis.Client
	Interval time.Duration
}

// Start emits the full catalog whenever its serialized form changes,
// beginning with the current state. The channel closes when ctx ends.
func (w *Watcher) Start(ctx context.Context) <-chan []Product {
	out := make(chan []Product, 1)
	go w.loop(ctx, out)
	return out
}

func (w *Watcher) loop(ctx context.Context, out chan<- []Product) {
	defer close(out)

	sub := w.Redis.Subscribe(ctx, redisx.ChanCatalogChanged)
	defer sub.Close()
	notify := sub.Channel()

	interval := w.Interval
	if interval <= 0 {
		interval = time.Second
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	var last []byte
	emit := func() {
		products, err := w.Repo.Load(ctx)
		if err != nil {
			log.Printf("catalog watch: %v", err)
			return
		}
		b, err := json.Marshal(products)
		if err != nil || bytes.Equal(b, last) {
			return
		}
		last = b
		select {
		case out <- products:
		case <-ctx.Done():
		}
	}

	emit()
	for {
		select {
		case <-ctx.Done():
			return
		case <-notify:
			emit()
		case <-tick.C:
			emit()
		}
	}
}

// Cache holds the last observed catalog so request handlers read memory
// instead of hitting the repository on every call.
type Cache struct {
	mu       sync.RWMutex
	products []Product
}

// NewCache starts from an empty catalog; feed it from a Watcher.
func NewCache() *Cache { return &Cache{} }

func (c *Cache) Set(products []Product) {
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
}

// Products returns a copy safe for the caller to filter and annotate.
func (c *Cache) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Follow consumes watcher updates until the channel closes.
func (c *Cache) Follow(updates <-chan []Product) {
	for products := range updates {
		c.Set(products)
	}
}
