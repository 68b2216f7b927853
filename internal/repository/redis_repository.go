package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each record sequence as one JSON value under
// "<prefix>:catalog" and "<prefix>:cart"
type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisRepository) LoadCatalog(ctx context.Context) ([]domain.ProductRecord, error) {
	return getRecords[domain.ProductRecord](ctx, r.client, r.key("catalog"))
}

func (r *RedisRepository) SaveCatalog(ctx context.Context, records []domain.ProductRecord) error {
	return setRecords(ctx, r.client, r.key("catalog"), records)
}

func (r *RedisRepository) LoadCart(ctx context.Context) ([]domain.CartRecord, error) {
	return getRecords[domain.CartRecord](ctx, r.client, r.key("cart"))
}

func (r *RedisRepository) SaveCart(ctx context.Context, records []domain.CartRecord) error {
	return setRecords(ctx, r.client, r.key("cart"), records)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) key(name string) string {
	return fmt.Sprintf("%s:%s", r.prefix, name)
}

func getRecords[T any](ctx context.Context, client *redis.Client, key string) ([]T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return decodeRecords[T](data)
}

func setRecords[T any](ctx context.Context, client *redis.Client, key string, records []T) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	if err := client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
