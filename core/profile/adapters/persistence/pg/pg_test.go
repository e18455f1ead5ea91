package pg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"profile-service/core/profile/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stephenafamo/bob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapProfileError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, domain.ErrProfileNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), domain.ErrProfileNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "profiles_pkey"}, domain.ErrDuplicateProfile},
		{"not null violation", &pgconn.PgError{Code: "23502"}, domain.ErrInvalidData},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrInvalidData},
		{"invalid text representation", &pgconn.PgError{Code: "22P02"}, domain.ErrInvalidData},
		{"too many connections", &pgconn.PgError{Code: "53300"}, domain.ErrUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, domain.ErrUnavailable},
		{"bad conn", driver.ErrBadConn, domain.ErrUnavailable},
		{"conn done", sql.ErrConnDone, domain.ErrUnavailable},
		{"deadline", context.DeadlineExceeded, domain.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, wrapProfileError(tt.err), tt.want)
		})
	}
}

func TestWrapProfileErrorPassthrough(t *testing.T) {
	assert.NoError(t, wrapProfileError(nil))

	other := errors.New("boom")
	assert.Same(t, other, wrapProfileError(other))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.ErrorIs(t, wrapProfileError(syntax), syntax)
}

func TestToProfile(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	row := ProfileRow{
		ID:                id,
		UserID:            "u1",
		FileID:            "f1",
		FileURI:           "uri",
		FileThumbnailURI:  "thumb",
		BankAccountName:   "bank",
		BankAccountHolder: "holder",
		BankAccountNumber: "123",
	}
	got := toProfile(row)
	assert.Equal(t, domain.Profile{
		ID:                id,
		UserID:            "u1",
		FileID:            "f1",
		FileURI:           "uri",
		FileThumbnailURI:  "thumb",
		BankAccountName:   "bank",
		BankAccountHolder: "holder",
		BankAccountNumber: "123",
	}, got)

	out, err := profileTransformer{}.TransformScanned([]ProfileRow{row, row})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func build(t *testing.T, q bob.Query) (string, []any) {
	t.Helper()
	sqlStr, args, err := bob.Build(context.Background(), q)
	require.NoError(t, err)
	return sqlStr, args
}

func TestReaderQueries(t *testing.T) {
	r := NewPostgresProfileReader(nil, DefaultTable)

	sqlStr, args := build(t, r.listQuery())
	assert.Contains(t, sqlStr, "profiles")
	assert.Contains(t, sqlStr, `ORDER BY id`)
	assert.Empty(t, args)

	id := uuid.Must(uuid.NewV7())
	sqlStr, args = build(t, r.byIDQuery(id))
	assert.Contains(t, sqlStr, `"id" = $1`)
	assert.Equal(t, []any{id}, args)

	sqlStr, args = build(t, r.byUserIDQuery("u1"))
	assert.Contains(t, sqlStr, `"user_id" = $1`)
	assert.Contains(t, sqlStr, `ORDER BY id`)
	assert.Contains(t, sqlStr, "LIMIT")
	assert.Contains(t, args, "u1")
}

func TestModifyQueryOnlySetsProvidedFields(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	name := "New Bank"
	empty := ""

	sqlStr, args := build(t, modifyQuery(DefaultTable, id, &domain.ModifyProfileParams{
		BankAccountName: &name,
		FileID:          &empty,
	}))

	assert.Contains(t, sqlStr, "UPDATE")
	assert.Contains(t, sqlStr, "profiles")
	assert.Contains(t, sqlStr, `"bank_account_name" = `)
	assert.Contains(t, sqlStr, `"file_id" = `)
	assert.NotContains(t, sqlStr, `"user_id" =`)
	assert.NotContains(t, sqlStr, `"bank_account_number" =`)
	assert.Contains(t, sqlStr, "RETURNING")
	assert.ElementsMatch(t, []any{id, name, empty}, args)
}

func TestWriteQueries(t *testing.T) {
	sqlStr, _ := build(t, insertQuery(DefaultTable))
	assert.Contains(t, sqlStr, "INSERT INTO")
	for _, col := range profileColumns {
		assert.Contains(t, sqlStr, col)
	}
	assert.Contains(t, sqlStr, "RETURNING")

	sqlStr, _ = build(t, deleteQuery(DefaultTable))
	assert.Contains(t, sqlStr, "DELETE FROM")
	assert.Contains(t, sqlStr, "RETURNING")
}

func TestModifyProfileRejectsEmptyParams(t *testing.T) {
	w := &PostgresProfileWriter{table: DefaultTable}
	_, err := w.ModifyProfile(context.Background(), uuid.Must(uuid.NewV7()), &domain.ModifyProfileParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}
