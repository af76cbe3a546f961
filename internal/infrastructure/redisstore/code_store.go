package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

// CodeStore keeps two-factor code hashes under a per-user key with a TTL.
type CodeStore struct {
	RDB *redis.Client
}

func NewCodeStore(rdb *redis.Client) *CodeStore {
	return &CodeStore{RDB: rdb}
}

func (s *CodeStore) Save(ctx context.Context, userID, hash string, ttl time.Duration) error {
	return s.RDB.Set(ctx, helpers.KeyTwoFactor(userID), hash, ttl).Err()
}

func (s *CodeStore) Get(ctx context.Context, userID string) (string, bool, error) {
	v, err := s.RDB.Get(ctx, helpers.KeyTwoFactor(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *CodeStore) Delete(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.RDB, helpers.KeyTwoFactor(userID))
}
