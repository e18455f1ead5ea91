// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"profile-service/core/profile/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultTable is the table created by the embedded migrations.
const DefaultTable = "profiles"

// profileColumns is the column order used by every SELECT and RETURNING clause.
var profileColumns = []string{
	"id",
	"user_id",
	"file_id",
	"file_uri",
	"file_thumbnail_uri",
	"bank_account_name",
	"bank_account_holder",
	"bank_account_number",
}

// selectColumns is profileColumns typed for the variadic clause builders.
var selectColumns = func() []any {
	out := make([]any, len(profileColumns))
	for i, c := range profileColumns {
		out[i] = c
	}
	return out
}()

type (
	// ProfileRow is the persistence entity shape used by storage adapters.
	ProfileRow struct {
		ID                uuid.UUID `db:"id"`
		UserID            string    `db:"user_id"`
		FileID            string    `db:"file_id"`
		FileURI           string    `db:"file_uri"`
		FileThumbnailURI  string    `db:"file_thumbnail_uri"`
		BankAccountName   string    `db:"bank_account_name"`
		BankAccountHolder string    `db:"bank_account_holder"`
		BankAccountNumber string    `db:"bank_account_number"`
	}
)

// toProfile converts a ProfileRow to a domain Profile.
func toProfile(row ProfileRow) domain.Profile {
	return domain.Profile{
		ID:                row.ID,
		UserID:            row.UserID,
		FileID:            row.FileID,
		FileURI:           row.FileURI,
		FileThumbnailURI:  row.FileThumbnailURI,
		BankAccountName:   row.BankAccountName,
		BankAccountHolder: row.BankAccountHolder,
		BankAccountNumber: row.BankAccountNumber,
	}
}

// profileTransformer implements bob's transformer interface for automatic row to domain conversion.
type profileTransformer struct{}

func (profileTransformer) TransformScanned(rows []ProfileRow) ([]domain.Profile, error) {
	out := make([]domain.Profile, len(rows))
	for i, r := range rows {
		out[i] = toProfile(r)
	}
	return out, nil
}

// wrapProfileError centralizes mapping of DB errors to domain errors.
// The original error stays in the chain for logging.
func wrapProfileError(err error) error {
	if err == nil {
		return nil
	}

	// sql.ErrNoRows is the only way a single-row statement reports absence
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%w: %s", domain.ErrDuplicateProfile, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, "23"), // integrity_constraint_violation
			strings.HasPrefix(pgErr.Code, "22"): // data_exception
			return fmt.Errorf("%w: %s", domain.ErrInvalidData, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, "08"), // connection_exception
			strings.HasPrefix(pgErr.Code, "53"), // insufficient_resources
			strings.HasPrefix(pgErr.Code, "57P"): // operator_intervention
			return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) ||
		pgconn.Timeout(err) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}

	return err
}
