// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/registra-app/registra/internal/platform/apperr"
	"github.com/registra-app/registra/internal/platform/constants"
	"github.com/registra-app/registra/internal/platform/sec"
)

// # Session Cache

// RedisSessionCache implements SessionCache using Redis.
//
// Entries are keyed by the session token digest and expire on a short TTL,
// so a guard-protected page load costs a single Redis GET on the hot path
// instead of two database round-trips. Revocation paths evict explicitly;
// the TTL only bounds staleness for principal fields like the display name.
type RedisSessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new Redis-backed SessionCache.
func NewSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{client: client}
}

func sessionCacheKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

/*
Get retrieves the cached principal for a token digest.

Description: Returns apperr.NotFound on a cache miss so the caller falls
through to the database.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *sec.Principal: Cached principal
  - error: apperr.NotFound on miss, or connectivity errors
*/
func (cache *RedisSessionCache) Get(context context.Context, tokenHash string) (*sec.Principal, error) {
	payload, err := cache.client.Get(context, sessionCacheKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cached session")
		}
		return nil, fmt.Errorf("redis_session_cache_get_failed: %w", err)
	}

	principal := &sec.Principal{}
	if err := json.Unmarshal(payload, principal); err != nil {
		return nil, fmt.Errorf("redis_session_cache_decode_failed: %w", err)
	}

	return principal, nil
}

/*
Set stores a resolved principal for a bounded duration.

Parameters:
  - context: context.Context
  - tokenHash: string
  - principal: *sec.Principal
  - ttl: time.Duration

Returns:
  - error: Encoding or storage failures
*/
func (cache *RedisSessionCache) Set(context context.Context, tokenHash string, principal *sec.Principal, ttl time.Duration) error {
	payload, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("redis_session_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, sessionCacheKey(tokenHash), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_cache_set_failed: %w", err)
	}

	return nil
}

/*
Delete evicts cached principals for the given token digests.

Description: Called before session rows are removed so revocation is visible
immediately, not after the cache TTL lapses. Evicting absent keys is a no-op.

Parameters:
  - context: context.Context
  - tokenHashes: ...string

Returns:
  - error: Eviction failures
*/
func (cache *RedisSessionCache) Delete(context context.Context, tokenHashes ...string) error {
	if len(tokenHashes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tokenHashes))
	for _, hash := range tokenHashes {
		keys = append(keys, sessionCacheKey(hash))
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_cache_delete_failed: %w", err)
	}

	return nil
}
