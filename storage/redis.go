package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/etnz/bondbook"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis stores the slot as a single redis string.
type Redis struct {
	client *redis.Client
	key    string
	log    *zap.Logger
}

// NewRedis returns the storage for key on client.
func NewRedis(client *redis.Client, key string, log *zap.Logger) *Redis {
	return &Redis{client: client, key: key, log: log}
}

// OpenRedis connects to the redis server in u and checks the connection. The
// "key" query parameter names the slot.
func OpenRedis(ctx context.Context, u *url.URL, log *zap.Logger) (*Redis, error) {
	key := slotParam(u, "key")
	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cannot connect to redis at %s: %w", opts.Addr, err)
	}
	log.Info("connected to redis", zap.String("addr", opts.Addr), zap.String("key", key))
	return NewRedis(client, key, log), nil
}

// Load reads the key. A missing key is an empty book.
func (r *Redis) Load(ctx context.Context) ([]bondbook.Instrument, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.log.Debug("no book in redis yet", zap.String("key", r.key))
		return []bondbook.Instrument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get %q from redis: %w", r.key, err)
	}
	return bondbook.UnmarshalInstruments(data)
}

// Save sets the key, without expiration.
func (r *Redis) Save(ctx context.Context, instruments []bondbook.Instrument) error {
	data, err := bondbook.MarshalInstruments(instruments)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("cannot set %q in redis: %w", r.key, err)
	}
	return nil
}

// Close closes the connection.
func (r *Redis) Close() error { return r.client.Close() }
