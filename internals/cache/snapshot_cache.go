package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client membungkus Redis untuk snapshot getData.
// SPA lama me-refetch seluruh koleksi pada tiap perubahan, jadi snapshot
// pendek + invalidasi pada tiap aksi tulis sudah cukup.
type Client struct {
	rdb *redis.Client
}

const (
	snapshotKey = "celikkalam:getdata"
	snapshotTTL = 30 * time.Second
)

// Initialize membuat client dari REDIS_URL. URL kosong = cache dimatikan (nil client).
func Initialize(redisURL string) (*Client, error) {
	if redisURL == "" {
		log.Println("⚠️ REDIS_URL kosong, snapshot cache dimatikan")
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Println("✅ Redis snapshot cache siap.")
	return &Client{rdb: rdb}, nil
}

// GetSnapshot mengambil snapshot getData. (nil, nil) kalau miss atau cache mati.
func (c *Client) GetSnapshot(ctx context.Context) (json.RawMessage, error) {
	if c == nil {
		return nil, nil
	}
	val, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return json.RawMessage(val), nil
}

// SetSnapshot menyimpan snapshot getData dengan TTL pendek.
func (c *Client) SetSnapshot(ctx context.Context, payload interface{}) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, snapshotKey, data, snapshotTTL).Err()
}

// Invalidate dipanggil setiap ada aksi tulis (register/createClass/enroll/pay/webhook).
func (c *Client) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, snapshotKey).Err(); err != nil {
		log.Printf("[WARN] gagal invalidate snapshot cache: %v", err)
	}
}
