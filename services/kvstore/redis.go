package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// Each key is a Redis hash with two fields so the blob and its version can be
// updated atomically by the CAS script.
const (
	hashFieldData    = "data"
	hashFieldVersion = "version"
)

// casScript swaps the blob only when the stored version matches ARGV[1].
// Returns the new version, or -1 on conflict.
var casScript = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], 'version')
if not v then v = '0' end
if v ~= ARGV[1] then return -1 end
local next = tonumber(v) + 1
redis.call('HSET', KEYS[1], 'data', ARGV[2], 'version', next)
return next
`)

// RedisStore persists portal blobs in Redis.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore creates a Store backed by the given Redis address. Accepts
// either a plain host:port or a full redis:// URL.
func NewRedisStore(addr string, db int) (*RedisStore, error) {
	var client *redis.Client
	if opt, err := redis.ParseURL(addr); err == nil {
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr, DB: db})
	}

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Successfully connected to Redis")

	return &RedisStore{client: client, ctx: ctx}, nil
}

func (r *RedisStore) Get(key string, into interface{}) (bool, error) {
	data, err := r.client.HGet(r.ctx, key, hashFieldData).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error getting key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("error decoding value for key %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisStore) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding value for key %s: %w", key, err)
	}
	pipe := r.client.TxPipeline()
	pipe.HSet(r.ctx, key, hashFieldData, data)
	pipe.HIncrBy(r.ctx, key, hashFieldVersion, 1)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("error setting key %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) CompareAndSwap(key string, value interface{}, expected uint64) (uint64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("error encoding value for key %s: %w", key, err)
	}
	result, err := casScript.Run(r.ctx, r.client, []string{key}, expected, data).Int64()
	if err != nil {
		return 0, fmt.Errorf("error swapping key %s: %w", key, err)
	}
	if result < 0 {
		return 0, ErrConflict
	}
	return uint64(result), nil
}

func (r *RedisStore) Version(key string) (uint64, error) {
	version, err := r.client.HGet(r.ctx, key, hashFieldVersion).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error reading version of key %s: %w", key, err)
	}
	return version, nil
}

func (r *RedisStore) Delete(key string) error {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting key %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Keys(prefix string) ([]string, error) {
	keys := []string{}
	iter := r.client.Scan(r.ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(r.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning keys with prefix %s: %w", prefix, err)
	}
	return keys, nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %w", err)
	}
	return nil
}
