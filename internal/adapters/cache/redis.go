// Package cache holds the Redis-backed tally cache. Counts are stored per
// event as a hash of option id to vote count and expire after a TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"electionhub/internal/domain"
)

// presenceField marks a cached tally with no votes; HSET needs at least one field.
const presenceField = "_"

// generationTTL bounds how long an event's generation counter outlives its last vote.
const generationTTL = 24 * time.Hour

// RedisConfig holds connection settings for the tally cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisTallyCache implements domain.TallyCache.
type RedisTallyCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ domain.TallyCache = (*RedisTallyCache)(nil)

// NewRedisTallyCache connects a new client with cfg.
func NewRedisTallyCache(cfg RedisConfig) *RedisTallyCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisTallyCacheWithClient(rdb, cfg.TTL)
}

// NewRedisTallyCacheWithClient wraps an existing client.
func NewRedisTallyCacheWithClient(client redis.UniversalClient, ttl time.Duration) *RedisTallyCache {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisTallyCache{client: client, ttl: ttl}
}

func tallyKey(eventID string) string {
	return fmt.Sprintf("tally:%s", eventID)
}

func genKey(eventID string) string {
	return fmt.Sprintf("tally:gen:%s", eventID)
}

// Ping checks connectivity.
func (c *RedisTallyCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *RedisTallyCache) Close() error {
	return c.client.Close()
}

func (c *RedisTallyCache) Get(ctx context.Context, eventID string) (map[string]int, int64, bool, error) {
	var (
		hget *redis.MapStringStringCmd
		gget *redis.StringCmd
	)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hget = pipe.HGetAll(ctx, tallyKey(eventID))
		gget = pipe.Get(ctx, genKey(eventID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("redis tally get: %w", err)
	}
	gen, err := generation(gget)
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis tally get: %w", err)
	}
	raw := hget.Val()
	if len(raw) == 0 {
		return nil, gen, false, nil
	}
	counts := make(map[string]int, len(raw))
	for field, v := range raw {
		if field == presenceField {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, 0, false, fmt.Errorf("redis tally get: option %s: %w", field, err)
		}
		counts[field] = n
	}
	return counts, gen, true, nil
}

// Set writes counts under WATCH on the generation key. A generation other
// than gen, or a concurrent Invalidate, drops the write.
func (c *RedisTallyCache) Set(ctx context.Context, eventID string, gen int64, counts map[string]int) error {
	key := tallyKey(eventID)
	values := make([]any, 0, 2*len(counts)+2)
	values = append(values, presenceField, 0)
	for optionID, n := range counts {
		values = append(values, optionID, n)
	}
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(tx.Get(ctx, genKey(eventID)))
		if err != nil {
			return err
		}
		if cur != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, values...)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey(eventID))
	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("redis tally set: %w", err)
	}
}

func (c *RedisTallyCache) Invalidate(ctx context.Context, eventID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(eventID))
		pipe.Expire(ctx, genKey(eventID), generationTTL)
		pipe.Del(ctx, tallyKey(eventID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis tally invalidate: %w", err)
	}
	return nil
}

var errStaleGeneration = errors.New("tally generation changed")

// generation reads a generation counter; a missing key is generation 0.
func generation(cmd *redis.StringCmd) (int64, error) {
	n, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
