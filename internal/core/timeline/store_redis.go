// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/reignline/internal/layout"
	"github.com/taibuivan/reignline/internal/platform/constants"
	redisstore "github.com/taibuivan/reignline/internal/platform/redis"
)

// RedisSceneCache shares computed scenes between server instances.
type RedisSceneCache struct {
	client redis.UniversalClient
}

// NewRedisSceneCache wraps a connected client.
func NewRedisSceneCache(client redis.UniversalClient) *RedisSceneCache {
	return &RedisSceneCache{client: client}
}

/*
Get loads a cached scene.

Returns:
  - *layout.Scene: the decoded scene, nil on a miss
  - bool: false when the key is absent or expired
  - error: connectivity or decoding errors
*/
func (cache *RedisSceneCache) Get(ctx context.Context, key string) (*layout.Scene, bool, error) {
	raw, err := cache.client.Get(ctx, constants.RedisPrefixScene+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_scene_get_failed: %w", err)
	}

	var scene layout.Scene
	if err := json.Unmarshal(raw, &scene); err != nil {
		return nil, false, fmt.Errorf("redis_scene_decode_failed: %w", err)
	}
	return &scene, true, nil
}

// Set stores a scene with its TTL. A zero ttl keeps it until Redis evicts it.
func (cache *RedisSceneCache) Set(ctx context.Context, key string, scene *layout.Scene, ttl time.Duration) error {
	raw, err := json.Marshal(scene)
	if err != nil {
		return fmt.Errorf("redis_scene_encode_failed: %w", err)
	}
	if err := cache.client.Set(ctx, constants.RedisPrefixScene+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_scene_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisSceneCache) Ping(ctx context.Context) error {
	return redisstore.Ping(ctx, cache.client)
}

func (cache *RedisSceneCache) Name() string { return "redis" }

// SceneKey hashes the canonical JSON form of a layout input.
//
// Struct fields marshal in declaration order, so equal inputs give equal keys.
func SceneKey(in layout.Input) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("scene key: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(raw)), nil
}
