// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, header names and cache keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Headers: Canonical names used by middleware.
  - Caching: Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "reignline"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// HealthCheckTimeout bounds each dependency probe on /ready.
	HealthCheckTimeout = 2 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Request Limits

const (
	// MaxSceneBodyBytes caps a scene request, which carries the full record set.
	MaxSceneBodyBytes = 8 << 20

	// MaxCommandBodyBytes caps the small per-person command bodies.
	MaxCommandBodyBytes = 1 << 20
)

// # Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderOrigin         = "Origin"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderContentType    = "Content-Type"
	HeaderRetryAfter     = "Retry-After"
	HeaderXCache         = "X-Cache"
	ContentTypeJSON      = "application/json"
	ContentTypeJSONUTF8  = "application/json; charset=utf-8"
	CacheStatusHit       = "HIT"
	CacheStatusMiss      = "MISS"
	CacheStatusBypass    = "BYPASS"
	DefaultAllowedOrigin = "http://localhost:5173"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaChronicle = "chronicle"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixScene keys cached layout passes by input hash.
	RedisPrefixScene = "scene:"
)
