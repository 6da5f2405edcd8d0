// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/layout"
)

// # Memory Repository

// MemoryRepository holds a dataset in process. Tests and the CLI use it.
type MemoryRepository struct {
	mu      sync.RWMutex
	dataset chronicle.Dataset
}

// NewMemoryRepository wraps dataset.
func NewMemoryRepository(dataset chronicle.Dataset) *MemoryRepository {
	return &MemoryRepository{dataset: dataset}
}

func (repository *MemoryRepository) Load(_ context.Context) (chronicle.Dataset, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return repository.dataset, nil
}

// Replace swaps the whole dataset.
func (repository *MemoryRepository) Replace(dataset chronicle.Dataset) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.dataset = dataset
}

func (repository *MemoryRepository) Ping(_ context.Context) error { return nil }

func (repository *MemoryRepository) Source() string { return "memory" }

// # Memory Scene Cache

// defaultMemoryCacheEntries bounds the in-process cache.
const defaultMemoryCacheEntries = 256

type cachedScene struct {
	scene     *layout.Scene
	expiresAt time.Time
}

// MemorySceneCache is the in-process scene cache used when Redis is not configured.
type MemorySceneCache struct {
	mu         sync.Mutex
	entries    map[string]cachedScene
	maxEntries int
	now        func() time.Time
}

// NewMemorySceneCache builds a cache holding at most maxEntries scenes.
// A non-positive maxEntries uses the default.
func NewMemorySceneCache(maxEntries int) *MemorySceneCache {
	if maxEntries <= 0 {
		maxEntries = defaultMemoryCacheEntries
	}
	return &MemorySceneCache{
		entries:    make(map[string]cachedScene),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (cache *MemorySceneCache) Get(_ context.Context, key string) (*layout.Scene, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, ok := cache.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !cache.now().Before(entry.expiresAt) {
		delete(cache.entries, key)
		return nil, false, nil
	}
	return entry.scene, true, nil
}

// Set stores scene. A zero ttl keeps it until evicted.
func (cache *MemorySceneCache) Set(_ context.Context, key string, scene *layout.Scene, ttl time.Duration) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if _, exists := cache.entries[key]; !exists && len(cache.entries) >= cache.maxEntries {
		cache.evict()
	}

	entry := cachedScene{scene: scene}
	if ttl > 0 {
		entry.expiresAt = cache.now().Add(ttl)
	}
	cache.entries[key] = entry
	return nil
}

// evict drops expired entries, or the entry closest to expiry when none has expired.
func (cache *MemorySceneCache) evict() {
	now := cache.now()
	victim := ""
	var soonest time.Time
	for key, entry := range cache.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(cache.entries, key)
			continue
		}
		if victim == "" || (!entry.expiresAt.IsZero() && (soonest.IsZero() || entry.expiresAt.Before(soonest))) {
			victim, soonest = key, entry.expiresAt
		}
	}
	if len(cache.entries) >= cache.maxEntries && victim != "" {
		delete(cache.entries, victim)
	}
}

// Len reports the number of stored scenes, expired or not.
func (cache *MemorySceneCache) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return len(cache.entries)
}

func (cache *MemorySceneCache) Ping(_ context.Context) error { return nil }

func (cache *MemorySceneCache) Name() string { return "memory" }
