package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hackhub/models"

	"github.com/redis/go-redis/v9"
)

const publicListKey = "hackathons:public:v1"

// PublicList кэширует публичный список хакатонов в Redis
type PublicList struct {
	rdb *redis.Client
	ttl time.Duration
}

// New подключается к Redis по URL вида redis://host:6379/0
func New(ctx context.Context, url string, ttl time.Duration) (*PublicList, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return NewWithClient(rdb, ttl), nil
}

func NewWithClient(rdb *redis.Client, ttl time.Duration) *PublicList {
	return &PublicList{rdb: rdb, ttl: ttl}
}

func (c *PublicList) Close() error {
	return c.rdb.Close()
}

func (c *PublicList) GetPublic(ctx context.Context) ([]models.Hackathon, bool, error) {
	val, err := c.rdb.Get(ctx, publicListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var hs []models.Hackathon
	if err := json.Unmarshal(val, &hs); err != nil {
		return nil, false, err
	}
	return hs, true, nil
}

func (c *PublicList) SetPublic(ctx context.Context, hs []models.Hackathon) error {
	if hs == nil {
		hs = []models.Hackathon{}
	}
	b, err := json.Marshal(hs)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, publicListKey, b, c.ttl).Err()
}

func (c *PublicList) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, publicListKey).Err()
}
