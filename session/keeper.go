package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotKept is an exported constant or variable used by the authentication engine.
var ErrNotKept = errors.New("credential not held in vault")

// Keeper defines a public type used by authgate APIs.
//
// Keeper instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A Keeper is the server-held side of vault mode: the cookie carries an
// identifier, the keeper holds the signed credential under it. Lookup and
// Touch return [ErrNotKept] once the entry expired or was dropped.
type Keeper interface {
	Save(ctx context.Context, id, signed string, ttl time.Duration) error
	Lookup(ctx context.Context, id string) (string, error)
	Touch(ctx context.Context, id string, ttl time.Duration) error
	Drop(ctx context.Context, id string) error
}

// RedisKeeper defines a public type used by authgate APIs.
//
// RedisKeeper instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RedisKeeper struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisKeeper describes the newrediskeeper operation and its observable behavior.
//
// NewRedisKeeper may return an error when input validation, dependency calls, or security checks fail.
// NewRedisKeeper does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedisKeeper(rdb redis.UniversalClient, prefix string) *RedisKeeper {
	if prefix == "" {
		prefix = "ag"
	}
	return &RedisKeeper{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (k *RedisKeeper) key(id string) string {
	return k.prefix + ":tok:" + id
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (k *RedisKeeper) Save(ctx context.Context, id, signed string, ttl time.Duration) error {
	if err := k.rdb.Set(ctx, k.key(id), signed, ttl).Err(); err != nil {
		return fmt.Errorf("vault save: %w", err)
	}
	return nil
}

// Lookup describes the lookup operation and its observable behavior.
//
// Lookup may return an error when input validation, dependency calls, or security checks fail.
// Lookup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (k *RedisKeeper) Lookup(ctx context.Context, id string) (string, error) {
	signed, err := k.rdb.Get(ctx, k.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotKept
	}
	if err != nil {
		return "", fmt.Errorf("vault lookup: %w", err)
	}
	return signed, nil
}

// Touch describes the touch operation and its observable behavior.
//
// Touch may return an error when input validation, dependency calls, or security checks fail.
// Touch does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (k *RedisKeeper) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := k.rdb.Expire(ctx, k.key(id), ttl).Result()
	if err != nil {
		return fmt.Errorf("vault touch: %w", err)
	}
	if !ok {
		return ErrNotKept
	}
	return nil
}

// Drop describes the drop operation and its observable behavior.
//
// Drop may return an error when input validation, dependency calls, or security checks fail.
// Drop does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (k *RedisKeeper) Drop(ctx context.Context, id string) error {
	if err := k.rdb.Del(ctx, k.key(id)).Err(); err != nil {
		return fmt.Errorf("vault drop: %w", err)
	}
	return nil
}
