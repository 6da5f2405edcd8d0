// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"context"
	"time"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/layout"
)

// Repository supplies the full record set for a layout pass.
//
// The returned dataset must be treated as read-only by callers.
type Repository interface {
	Load(ctx context.Context) (chronicle.Dataset, error)
	Ping(ctx context.Context) error

	// Source names the backend for logs and metrics.
	Source() string
}

// SceneCache memoizes computed scenes by input hash.
type SceneCache interface {
	// Get returns ok=false on a miss. An expired entry is a miss.
	Get(ctx context.Context, key string) (scene *layout.Scene, ok bool, err error)
	Set(ctx context.Context, key string, scene *layout.Scene, ttl time.Duration) error
	Ping(ctx context.Context) error

	// Name labels the backend in metrics.
	Name() string
}
