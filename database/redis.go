package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickmorph/morph"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration

	// KeyPrefix namespaces this database's keys. Defaults to "morph".
	KeyPrefix string
}

// Redis implements Database on a shared Redis instance: a list of
// payloads per key preserves order, a companion set of fingerprints
// deduplicates.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Database = (*Redis)(nil)

// NewRedis creates a Redis-backed example database with the given
// options.
func NewRedis(opts RedisOptions) (*Redis, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "morph"
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("database: parse redis url: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("database: connect to redis: %w", err)
	}

	return &Redis{client: client, prefix: opts.KeyPrefix}, nil
}

func (r *Redis) listKey(key string) string {
	return r.prefix + ":examples:" + key
}

func (r *Redis) seenKey(key string) string {
	return r.prefix + ":seen:" + key
}

// Save stores value under key unless an equal value is already there.
func (r *Redis) Save(ctx context.Context, key string, value morph.Basic) error {
	if key == "" {
		return ErrInvalidKey
	}
	payload, err := morph.MarshalBasic(value)
	if err != nil {
		return fmt.Errorf("database: encode example: %w", err)
	}
	added, err := r.client.SAdd(ctx, r.seenKey(key), morph.Fingerprint(value)).Result()
	if err != nil {
		return fmt.Errorf("database: save example: %w", err)
	}
	if added == 0 {
		return nil
	}
	if err := r.client.RPush(ctx, r.listKey(key), payload).Err(); err != nil {
		return fmt.Errorf("database: save example: %w", err)
	}
	return nil
}

// Fetch returns the stored values for key, oldest first.
func (r *Redis) Fetch(ctx context.Context, key string) ([]morph.Basic, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	payloads, err := r.client.LRange(ctx, r.listKey(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("database: fetch examples: %w", err)
	}
	out := make([]morph.Basic, 0, len(payloads))
	for _, payload := range payloads {
		value, err := morph.UnmarshalBasic([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("database: decode example: %w", err)
		}
		out = append(out, value)
	}
	return out, nil
}

// Delete removes value from key.
func (r *Redis) Delete(ctx context.Context, key string, value morph.Basic) error {
	if key == "" {
		return ErrInvalidKey
	}
	removed, err := r.client.SRem(ctx, r.seenKey(key), morph.Fingerprint(value)).Result()
	if err != nil {
		return fmt.Errorf("database: delete example: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	payload, err := morph.MarshalBasic(value)
	if err != nil {
		return fmt.Errorf("database: encode example: %w", err)
	}
	if err := r.client.LRem(ctx, r.listKey(key), 1, payload).Err(); err != nil {
		return fmt.Errorf("database: delete example: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
