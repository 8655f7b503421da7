package permcache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"newsroom/internal/usecase"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "newsroom:perms:"

type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: client}, nil
}

func (c *Redis) Get(ctx context.Context, userID uint) ([]string, bool, error) {
	payload, err := c.client.Get(ctx, redisKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var grants []string
	if err := json.Unmarshal([]byte(payload), &grants); err != nil {
		return nil, false, err
	}
	return grants, true, nil
}

func (c *Redis) Put(ctx context.Context, userID uint, grants []string, ttl time.Duration) error {
	payload, err := json.Marshal(grants)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(userID), payload, ttl).Err()
}

func redisKey(userID uint) string {
	return redisKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

var _ usecase.PermissionCache = (*Redis)(nil)
