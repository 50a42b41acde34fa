package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	rankingKey = "skirmish:scores"
	entriesKey = "skirmish:scores:entries"

	// unix seconds divided by this stay below one until the year 5138
	tieScale = 1e11
)

// RedisStore ranks entries in a sorted set keyed by seconds, with the
// submit time in the fraction so equal times keep the earlier entry first.
// Entry bodies live in a hash next to it.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a store on top of an existing client
func NewRedisStore(client redis.UniversalClient) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis: client is required")
	}
	return &RedisStore{client: client}, nil
}

// DialRedis connects to a single redis instance and checks it responds
func DialRedis(ctx context.Context, addr string) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return NewRedisStore(client)
}

// Submit stores the entry
func (s *RedisStore) Submit(ctx context.Context, entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, entriesKey, entry.ID, data)
	pipe.ZAdd(ctx, rankingKey, redis.Z{Score: rankScore(entry), Member: entry.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to submit entry: %w", err)
	}
	return nil
}

// rankScore orders by seconds, then by timestamp
func rankScore(entry Entry) float64 {
	unix := entry.Timestamp.Unix()
	if unix < 0 {
		unix = 0
	}
	return float64(entry.Seconds) + float64(unix)/tieScale
}

// Top returns up to n entries, fastest first
func (s *RedisStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	ids, err := s.client.ZRange(ctx, rankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	raw, err := s.client.HMGet(ctx, entriesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for i, v := range raw {
		str, ok := v.(string)
		if !ok {
			// ranked id without a body
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(str), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry %s: %w", ids[i], err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
