package persist

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores each slot as a single redis string. Snapshots are small
// (tens to low hundreds of records) so whole-value GET/SET is fine.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Load(key string) ([]byte, bool, error) {
	val, err := r.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisKV) Save(key string, data []byte) error {
	return r.client.Set(context.Background(), key, data, 0).Err()
}
