package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Rows is the subset of pgx.Rows the services read from.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// DBConn abstracts the Postgres pool so services can be tested with fakes.
type DBConn interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (p *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := p.pool.Exec(ctx, sql, args...)
	return err
}

func (p *PoolAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateFunc computes the next value of a key from its current one.
// Returning the current value unchanged skips the write.
type UpdateFunc func(current string, found bool) (next string, err error)

// KVStore is a durable string key-value store.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Update applies fn atomically with respect to other writers of key.
	// fn may run more than once.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// maxUpdateAttempts bounds optimistic retries when another writer changes a
// watched key between read and write.
const maxUpdateAttempts = 10

// RedisStore persists values in Redis without expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Update runs fn inside WATCH/MULTI so concurrent writers on other
// processes cannot overwrite each other's changes.
func (r *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := retryOnConflict(maxUpdateAttempts, func() error {
		return r.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Result()
			found := true
			if errors.Is(err, redis.Nil) {
				current, found = "", false
			} else if err != nil {
				return err
			}

			next, err := fn(current, found)
			if err != nil {
				return err
			}
			if found && next == current {
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, next, 0)
				return nil
			})
			return err
		}, key)
	})
	if err != nil {
		return fmt.Errorf("updating %s: %w", key, err)
	}
	return nil
}

// retryOnConflict repeats op while it fails with redis.TxFailedErr.
func retryOnConflict(attempts int, op func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}
