package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"socialbot/types"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed post store.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	// Prefix namespaces the post keys; defaults to "scheduled_posts".
	Prefix string
}

// RedisStore keeps each post as a JSON string under <prefix>:<id>. It offers
// the same contract as FileStore for deployments where the scheduler runs on
// more than one host.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "scheduled_posts"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Create(ctx context.Context, payload types.PostPayload) (string, error) {
	id := newPostID()
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode post %s: %w", id, err)
	}
	if err := s.client.Set(ctx, s.key(id), data, 0).Err(); err != nil {
		return "", fmt.Errorf("write post %s: %w", id, err)
	}
	return id, nil
}

func (s *RedisStore) List(ctx context.Context) ([]types.ScheduledPost, error) {
	posts := make([]types.ScheduledPost, 0)

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+":*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan posts: %w", err)
		}
		for _, key := range keys {
			id := strings.TrimPrefix(key, s.prefix+":")
			payload, err := s.Get(ctx, id)
			if err != nil {
				// Key expired or was deleted between scan and read
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return nil, err
			}
			posts = append(posts, types.ScheduledPost{ID: id, Payload: payload})
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return posts, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (types.PostPayload, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return types.PostPayload{}, ErrNotFound
		}
		return types.PostPayload{}, fmt.Errorf("read post %s: %w", id, err)
	}

	var payload types.PostPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return types.PostPayload{}, fmt.Errorf("decode post %s: %w", id, err)
	}
	return payload, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}
	return removed > 0, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}
