// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/reignline/pkg/pointer"
)

/*
TestFallback distinguishes an absent value from an explicit zero.
*/
func TestFallback(t *testing.T) {
	assert.Equal(t, 800, pointer.Fallback[int](nil, 800))
	assert.Equal(t, 0, pointer.Fallback(pointer.To(0), 800))

	year := 481
	p := pointer.To(year)
	year = 511
	assert.Equal(t, 481, *p)
}
