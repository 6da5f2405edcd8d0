// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reignline/internal/platform/apperr"
	"github.com/taibuivan/reignline/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "personId", "clovis1", false},
		{"empty_string", "personId", "", true},
		{"whitespace_only", "personId", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Positive checks the zoom-style numeric rule.
*/
func TestValidator_Positive(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		isValid bool
	}{
		{"positive", 10, true},
		{"fraction", 0.25, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"nan", math.NaN(), false},
		{"infinite", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Positive("zoom", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_ID checks the record id format.
*/
func TestValidator_ID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		isValid bool
	}{
		{"plain", "clovis1", true},
		{"snake_case", "kingdom_franks", true},
		{"dotted", "ctx.g1-a", true},
		{"space", "louis xiv", false},
		{"slash", "a/b", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.ID("id", tt.id)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("personId", "napoleon1").
		MaxLen("personId", "napoleon1", 64).
		Range("minYear", 450, -5000, 5000).
		OneOf("kind", "spouses", "ancestors", "descendants", "spouses").
		Finite("deltaY", 12.5).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("personId", "").                    // Fails
		OneOf("kind", "cousins", "ancestors").        // Fails
		Custom("maxYear", true, "Must be after min"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, "maxYear", ae.Details[2].Field)
}
