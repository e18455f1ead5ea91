package pg

import (
	"context"
	"os"
	"testing"

	"profile-service/core/profile/domain"
	"profile-service/modules/db/postgres"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatabaseURLEnv = "PROFILE_TEST_DATABASE_URL"

// newTestStores connects to a real database, applies the embedded
// migrations and returns the store adapters over it.
func newTestStores(t *testing.T) (*PostgresProfileReader, *PostgresProfileWriter) {
	t.Helper()
	dsn := os.Getenv(testDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}

	ctx := context.Background()
	pool, err := postgres.New(ctx, &postgres.PostgresConfig{URL: dsn}, postgres.PostgresOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Shutdown(context.Background()) })

	require.NoError(t, pool.HealthCheck(ctx))
	require.NoError(t, pool.MigrateUp(ctx))

	writer, err := NewPostgresProfileWriter(ctx, pool.Primary(), DefaultTable)
	require.NoError(t, err)
	return NewPostgresProfileReader(pool, DefaultTable), writer
}

// uniqueParams scopes rows to the test run since the table is shared.
func uniqueParams(t *testing.T) *domain.CreateProfileParams {
	t.Helper()
	return &domain.CreateProfileParams{
		UserID:            "it-" + uuid.Must(uuid.NewV4()).String(),
		FileID:            "f1",
		FileURI:           "http://x/f1",
		FileThumbnailURI:  "http://x/f1t",
		BankAccountName:   "A",
		BankAccountHolder: "B",
		BankAccountNumber: "123",
	}
}

func TestStoreCreateThenGet(t *testing.T) {
	reader, writer := newTestStores(t)
	ctx := context.Background()

	created, err := writer.CreateProfile(ctx, uniqueParams(t))
	require.NoError(t, err)
	require.False(t, created.ID.IsNil())
	assert.Equal(t, uuid.V7, created.ID.Version())

	got, err := reader.GetProfileByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	primary, err := writer.GetProfileByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *primary)

	all, err := reader.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, *created)
}

func TestStoreGetByUserIDPicksLowestID(t *testing.T) {
	reader, writer := newTestStores(t)
	ctx := context.Background()

	params := uniqueParams(t)
	a, err := writer.CreateProfile(ctx, params)
	require.NoError(t, err)
	b, err := writer.CreateProfile(ctx, params)
	require.NoError(t, err)

	want := a.ID
	if b.ID.String() < want.String() {
		want = b.ID
	}
	got, err := reader.GetProfileByUserID(ctx, params.UserID)
	require.NoError(t, err)
	assert.Equal(t, want, got.ID)

	_, err = reader.GetProfileByUserID(ctx, "it-nobody-"+uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestStoreModifyTwiceIsStable(t *testing.T) {
	reader, writer := newTestStores(t)
	ctx := context.Background()

	created, err := writer.CreateProfile(ctx, uniqueParams(t))
	require.NoError(t, err)

	number := "999"
	patch := &domain.ModifyProfileParams{BankAccountNumber: &number}
	first, err := writer.ModifyProfile(ctx, created.ID, patch)
	require.NoError(t, err)
	second, err := writer.ModifyProfile(ctx, created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, "999", second.BankAccountNumber)
	assert.Equal(t, created.FileURI, second.FileURI)
	assert.Equal(t, created.UserID, second.UserID)

	got, err := reader.GetProfileByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *second, *got)
}

func TestStoreDeleteThenGet(t *testing.T) {
	reader, writer := newTestStores(t)
	ctx := context.Background()

	created, err := writer.CreateProfile(ctx, uniqueParams(t))
	require.NoError(t, err)

	deleted, err := writer.DeleteProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *deleted)

	_, err = reader.GetProfileByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestStoreUnknownIDIsNotFound(t *testing.T) {
	_, writer := newTestStores(t)
	ctx := context.Background()
	unknown := uuid.Must(uuid.NewV7())

	number := "1"
	_, err := writer.ModifyProfile(ctx, unknown, &domain.ModifyProfileParams{BankAccountNumber: &number})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = writer.DeleteProfile(ctx, unknown)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = writer.GetProfileByID(ctx, unknown)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
