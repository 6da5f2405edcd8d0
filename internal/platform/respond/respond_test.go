// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reignline/internal/platform/apperr"
	"github.com/taibuivan/reignline/internal/platform/respond"
	"github.com/taibuivan/reignline/pkg/pagination"
)

/*
TestError maps application errors to their status and hides unexpected ones.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Person"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", apperr.ValidationError("bad zoom", apperr.FieldError{Field: "zoom", Message: "must be positive"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"plain", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "disk on fire")
		})
	}
}

/*
TestPaginated wraps items and metadata.
*/
func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Paginated(rec, []string{"a"}, pagination.NewMeta(1, 20, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":["a"],"meta":{"page":1,"limit":20,"total":1,"totalPages":1}}`, rec.Body.String())
}
