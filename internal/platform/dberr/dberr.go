// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/reignline/internal/platform/apperr"
)

// undefinedTable is the SQLSTATE raised when migrations have not been applied.
const undefinedTable = "42P01"

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Record")
	}

	// 2. Deadlines surface as unavailability rather than bugs
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.ServiceUnavailable("The dataset store did not respond in time").
			WithCause(fmt.Errorf("%s: %w", action, err))
	}

	// 3. A missing table means the schema was never migrated
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return apperr.ServiceUnavailable("The dataset store is not initialised").
			WithCause(fmt.Errorf("%s: %w", action, err))
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
