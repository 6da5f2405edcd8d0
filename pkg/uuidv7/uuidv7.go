// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// Reignline uses them as request correlation ids, so log lines sort by arrival.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It falls back to a random v4 value if the clock-based generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as any UUID. Client-supplied request ids are
// only echoed when they pass this check.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
