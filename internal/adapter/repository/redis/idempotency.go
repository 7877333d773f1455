package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// processingMarker locks a key while the first request for it is still in
// flight. A caller that reads it back knows the original attempt has not
// produced a response yet.
const processingMarker = "processing"

// IdempotencyStore backs the Idempotency-Key middleware with Redis so that
// retried transfers and withdrawals replay the stored response instead of
// moving money twice.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "walletd:idem:",
	}
}

// CheckAndSet claims the key if it is unseen, returning (false, nil). When
// the key already exists it returns (true, stored) where stored may be the
// processing marker if the first attempt is still running. Passing a
// non-nil response claims the key with that response directly.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	k := s.prefix + key

	if response != nil {
		claimed, err := s.client.SetNX(ctx, k, response, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if claimed {
			return false, nil, nil
		}
	} else {
		claimed, err := s.client.SetNX(ctx, k, processingMarker, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if claimed {
			return false, nil, nil
		}
	}

	stored, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// The competing entry expired between SETNX and GET.
			return true, nil, nil
		}
		return false, nil, err
	}
	return true, stored, nil
}

// Update replaces the processing marker with the final response once the
// wrapped handler has succeeded.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
