package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/compress"
	"github.com/emrgen/prd/internal/config"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultTTL = 5 * time.Minute

func dashboardKey(authorID string) string {
	return "prd:dashboard:" + authorID
}

func dashboardStatsKey(authorID string) string {
	return "prd:dashboard:stats:" + authorID
}

// stored without a ttl
func dashboardVersionKey(authorID string) string {
	return "prd:dashboard:version:" + authorID
}

var _ DashboardCache = (*RedisDashboardCache)(nil)

type RedisDashboardCache struct {
	client  *redis.Client
	encoder compress.Compress
	ttl     time.Duration
}

func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) *RedisDashboardCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &RedisDashboardCache{client: client, encoder: compress.NewGZip(), ttl: ttl}
}

// NewDashboardCache connects to REDIS_ADDR, or returns the nop cache when it is unset.
func NewDashboardCache(cfg *config.Config) DashboardCache {
	if cfg.Redis.Addr == "" {
		logrus.Info("REDIS_ADDR not set, dashboard cache disabled")
		return NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Protocol: 2,
	})

	return NewRedisDashboardCache(client, cfg.Redis.TTL)
}

func (r *RedisDashboardCache) DashboardVersion(ctx context.Context, authorID string) (int64, error) {
	return readVersion(ctx, r.client, dashboardVersionKey(authorID))
}

func (r *RedisDashboardCache) GetDashboard(ctx context.Context, authorID string) (*v1.ListPRDsResponse, error) {
	res := &v1.ListPRDsResponse{}
	ok, err := r.get(ctx, dashboardKey(authorID), res)
	if err != nil || !ok {
		return nil, err
	}

	return res, nil
}

func (r *RedisDashboardCache) SetDashboard(ctx context.Context, authorID string, version int64, res *v1.ListPRDsResponse) error {
	return r.set(ctx, authorID, dashboardKey(authorID), version, res)
}

func (r *RedisDashboardCache) GetStats(ctx context.Context, authorID string) (*v1.GetDashboardStatsResponse, error) {
	res := &v1.GetDashboardStatsResponse{}
	ok, err := r.get(ctx, dashboardStatsKey(authorID), res)
	if err != nil || !ok {
		return nil, err
	}

	return res, nil
}

func (r *RedisDashboardCache) SetStats(ctx context.Context, authorID string, version int64, res *v1.GetDashboardStatsResponse) error {
	return r.set(ctx, authorID, dashboardStatsKey(authorID), version, res)
}

func (r *RedisDashboardCache) InvalidateDashboard(ctx context.Context, authorID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, dashboardVersionKey(authorID))
		pipe.Del(ctx, dashboardKey(authorID), dashboardStatsKey(authorID))
		return nil
	})
	return err
}

func (r *RedisDashboardCache) get(ctx context.Context, key string, v any) (bool, error) {
	buf, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	data, err := r.encoder.Decode(buf)
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}

	return true, nil
}

// set writes the value only while the author's dashboard version equals
// version. A write that loses to an invalidation is dropped silently.
func (r *RedisDashboardCache) set(ctx context.Context, authorID, key string, version int64, v any) error {
	marshal, err := json.Marshal(v)
	if err != nil {
		return err
	}

	data, err := r.encoder.Encode(marshal)
	if err != nil {
		return err
	}

	versionKey := dashboardVersionKey(authorID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, versionKey)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}

	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, c getter, key string) (int64, error) {
	version, err := c.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return version, err
}
