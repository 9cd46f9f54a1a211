package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/umajibakery/reservations/internal/redisx"
)

// Repository persists the catalog as one unit: every mutation reads the
// full list, transforms it, and writes the full list back. Concurrent
// writers overwrite each other; the last write wins.
type Repository interface {
	Load(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, products []Product) error
}

// RedisRepository keeps the whole catalog under a single key as a JSON
// array and announces every save on a pub/sub channel.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) Load(ctx context.Context) ([]Product, error) {
	raw, err := r.rdb.Get(ctx, redisx.KeyCatalog).Bytes()
	if errors.Is(err, redis.Nil) {
		return r.seed(ctx)
	}
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		// Corrupt payload. Recover silently with the defaults; the
		// customer never sees this.
		log.Printf("catalog: unreadable payload, reseeding defaults: %v", err)
		return r.seed(ctx)
	}
	return products, nil
}

func (r *RedisRepository) Save(ctx context.Context, products []Product) error {
	b, err := json.Marshal(products)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, redisx.KeyCatalog, b, 0).Err(); err != nil {
		return err
	}
	// A lost notification only delays visibility until the next poll,
	// so a publish failure does not fail the save.
	if err := r.rdb.Publish(ctx, redisx.ChanCatalogChanged, "").Err(); err != nil {
		log.Printf("catalog: change notify: %v", err)
	}
	return nil
}

func (r *RedisRepository) seed(ctx context.Context) ([]Product, error) {
	products := DefaultProducts()
	if err := r.Save(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}
