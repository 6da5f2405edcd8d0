// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds and reads optional record fields.

A title's rank and the year bounds of a view request are pointers so that an
absent value stays distinct from zero.
*/
package pointer

// To returns the address of a copy of v, e.g. pointer.To(chronicle.RankKing).
func To[T any](v T) *T {
	return &v
}

// Fallback returns *p, or fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
