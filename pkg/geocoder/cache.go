package geocoder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

// Store persists resolved addresses.
type Store interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, r Result, ttl time.Duration) error
}

// Cached memoizes another Geocoder and collapses concurrent lookups of the
// same address. Store failures fall through to the provider.
type Cached struct {
	Next   Geocoder
	Store  Store
	TTL    time.Duration
	Logger *logrus.Logger

	group singleflight.Group
}

func NewCached(next Geocoder, store Store, ttl time.Duration, logger *logrus.Logger) *Cached {
	return &Cached{Next: next, Store: store, TTL: ttl, Logger: logger}
}

func (c *Cached) Geocode(ctx context.Context, address string) (Result, error) {
	key := cacheKey(address)
	if r, ok, err := c.Store.Get(ctx, key); err != nil {
		c.warn(err, "geocode cache read failed")
	} else if ok {
		return r, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		r, err := c.Next.Geocode(ctx, address)
		if err != nil {
			return Result{}, err
		}
		if err := c.Store.Set(ctx, key, r, c.TTL); err != nil {
			c.warn(err, "geocode cache write failed")
		}
		return r, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (c *Cached) warn(err error, msg string) {
	if c.Logger != nil {
		c.Logger.WithError(err).Warn(msg)
	}
}

func cacheKey(address string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(address))))
	return "geocode:" + hex.EncodeToString(sum[:])
}

// RedisStore keeps results as JSON values.
type RedisStore struct {
	RDB *redis.Client
}

func (s RedisStore) Get(ctx context.Context, key string) (Result, bool, error) {
	var r Result
	ok, err := helpers.RedisGetJSON(ctx, s.RDB, key, &r)
	return r, ok, err
}

func (s RedisStore) Set(ctx context.Context, key string, r Result, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, s.RDB, key, r, ttl)
}
