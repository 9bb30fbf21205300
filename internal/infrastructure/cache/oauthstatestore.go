// Package cache holds the Redis-backed stores: OAuth login states and the
// sliding-window rate limiter counters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reque-io/reque/internal/shared/biztime"
)

// stateRecord is the JSON document parked under one state key.
type stateRecord struct {
	Provider     string    `json:"provider"`
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// OAuthStateRecord is what Consume hands back to the callback flow.
type OAuthStateRecord struct {
	Provider     string
	CodeVerifier string
}

// RedisOAuthStateStore parks in-flight OAuth states with a TTL. Consume uses
// GETDEL so a state survives exactly one callback, which blocks replays.
type RedisOAuthStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisOAuthStateStore builds a store. A ten minute TTL comfortably covers
// a user stepping through the provider consent screen.
func NewRedisOAuthStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisOAuthStateStore {
	if prefix == "" {
		prefix = "oauth:state:"
	}
	return &RedisOAuthStateStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisOAuthStateStore) Set(ctx context.Context, state string, provider, codeVerifier string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if provider == "" {
		return errors.New("provider cannot be empty")
	}
	if codeVerifier == "" {
		return errors.New("code_verifier cannot be empty")
	}

	record := stateRecord{
		Provider:     provider,
		CodeVerifier: codeVerifier,
		CreatedAt:    biztime.NowUTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal state record: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(state), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in redis: %w", err)
	}

	return nil
}

// Consume atomically retrieves and deletes a state record. A missing key
// means the state expired or was already used.
func (s *RedisOAuthStateStore) Consume(ctx context.Context, state string) (*OAuthStateRecord, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	data, err := s.client.GetDel(ctx, s.buildKey(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("state not found or expired")
		}
		return nil, fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var record stateRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state record: %w", err)
	}

	return &OAuthStateRecord{
		Provider:     record.Provider,
		CodeVerifier: record.CodeVerifier,
	}, nil
}

func (s *RedisOAuthStateStore) buildKey(state string) string {
	return s.prefix + state
}
