// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reignline/internal/platform/validate"
	"github.com/taibuivan/reignline/pkg/query"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

The body is capped at limit bytes. Unknown fields are rejected so typos in
settings names surface instead of silently falling back to defaults.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, limit int64, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, limit))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
QueryList reads a comma-separated query parameter, e.g. ?contexts=g1,g2.
*/
func QueryList(request *http.Request, name string) []string {
	return query.StringSlice(request.URL.Query().Get(name))
}

/*
QueryBool reads a boolean query parameter, falling back when absent or malformed.
*/
func QueryBool(request *http.Request, name string, fallback bool) bool {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
