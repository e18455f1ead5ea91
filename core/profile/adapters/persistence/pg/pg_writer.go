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
	"fmt"

	"profile-service/core/profile/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ domain.ProfileWriteStore = (*PostgresProfileWriter)(nil)

type (
	PostgresProfileWriter struct {
		table string
		db    *bob.DB // for prepared statements on primary
		newID func() (uuid.UUID, error)

		createStmt bob.QueryStmt[createProfileArgs, ProfileRow, []ProfileRow]
		deleteStmt bob.QueryStmt[deleteProfileArgs, ProfileRow, []ProfileRow]
	}

	// Arg types for write operations
	createProfileArgs struct {
		ID                uuid.UUID `db:"id"`
		UserID            string    `db:"user_id"`
		FileID            string    `db:"file_id"`
		FileURI           string    `db:"file_uri"`
		FileThumbnailURI  string    `db:"file_thumbnail_uri"`
		BankAccountName   string    `db:"bank_account_name"`
		BankAccountHolder string    `db:"bank_account_holder"`
		BankAccountNumber string    `db:"bank_account_number"`
	}

	deleteProfileArgs struct {
		ID uuid.UUID `db:"id"`
	}
)

func insertQuery(table string) bob.Query {
	return psql.Insert(
		im.Into(table, profileColumns...),
		im.Values(
			bob.Named("id"),
			bob.Named("user_id"),
			bob.Named("file_id"),
			bob.Named("file_uri"),
			bob.Named("file_thumbnail_uri"),
			bob.Named("bank_account_name"),
			bob.Named("bank_account_holder"),
			bob.Named("bank_account_number"),
		),
		im.Returning(selectColumns...),
	)
}

func deleteQuery(table string) bob.Query {
	return psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote("id").EQ(bob.Named("id"))),
		dm.Returning(selectColumns...),
	)
}

func byIDQuery(table string, id uuid.UUID) bob.Query {
	return psql.Select(
		sm.Columns(selectColumns...),
		sm.From(table),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
}

// modifyQuery renders an UPDATE touching only the fields set in params.
// It is left unprepared because the SET clause is truly dynamic.
func modifyQuery(table string, id uuid.UUID, params *domain.ModifyProfileParams) bob.Query {
	query := psql.Update(
		um.Table(table),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(selectColumns...),
	)

	set := func(col string, val *string) {
		if val != nil {
			query.Apply(um.SetCol(col).To(psql.Arg(*val)))
		}
	}
	set("user_id", params.UserID)
	set("file_id", params.FileID)
	set("file_uri", params.FileURI)
	set("file_thumbnail_uri", params.FileThumbnailURI)
	set("bank_account_name", params.BankAccountName)
	set("bank_account_holder", params.BankAccountHolder)
	set("bank_account_number", params.BankAccountNumber)

	return query
}

// NewPostgresProfileWriter creates a new writer with prepared statements bound to the primary.
func NewPostgresProfileWriter(ctx context.Context, primary *bob.DB, table string) (*PostgresProfileWriter, error) {
	w := &PostgresProfileWriter{
		table: table,
		db:    primary,
		newID: uuid.NewV7,
	}

	createStmt, err := bob.PrepareQuery[createProfileArgs](ctx, *primary, insertQuery(table), scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, fmt.Errorf("prepare create profile: %w", err)
	}
	w.createStmt = createStmt

	deleteStmt, err := bob.PrepareQuery[deleteProfileArgs](ctx, *primary, deleteQuery(table), scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, fmt.Errorf("prepare delete profile: %w", err)
	}
	w.deleteStmt = deleteStmt

	return w, nil
}

// CreateProfile implements ProfileWriteStore.
// Ids are time ordered (v7) so the primary key index stays append-mostly.
func (w *PostgresProfileWriter) CreateProfile(ctx context.Context, params *domain.CreateProfileParams) (*domain.Profile, error) {
	id, err := w.newID()
	if err != nil {
		return nil, fmt.Errorf("generate profile id: %w", err)
	}

	row, err := w.createStmt.One(ctx, createProfileArgs{
		ID:                id,
		UserID:            params.UserID,
		FileID:            params.FileID,
		FileURI:           params.FileURI,
		FileThumbnailURI:  params.FileThumbnailURI,
		BankAccountName:   params.BankAccountName,
		BankAccountHolder: params.BankAccountHolder,
		BankAccountNumber: params.BankAccountNumber,
	})
	if err != nil {
		return nil, wrapProfileError(err)
	}
	p := toProfile(row)
	return &p, nil
}

// GetProfileByID implements ProfileWriteStore. It reads from the primary.
func (w *PostgresProfileWriter) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	row, err := bob.One(ctx, w.db, byIDQuery(w.table, id), scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, wrapProfileError(err)
	}
	prof := toProfile(row)
	return &prof, nil
}

// ModifyProfile implements ProfileWriteStore.
func (w *PostgresProfileWriter) ModifyProfile(ctx context.Context, id uuid.UUID, params *domain.ModifyProfileParams) (*domain.Profile, error) {
	if params.IsEmpty() {
		return nil, domain.ErrInvalidData
	}

	row, err := bob.One(ctx, w.db, modifyQuery(w.table, id, params), scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, wrapProfileError(err)
	}
	prof := toProfile(row)
	return &prof, nil
}

// DeleteProfile implements ProfileWriteStore.
func (w *PostgresProfileWriter) DeleteProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	row, err := w.deleteStmt.One(ctx, deleteProfileArgs{ID: id})
	if err != nil {
		return nil, wrapProfileError(err)
	}
	prof := toProfile(row)
	return &prof, nil
}
