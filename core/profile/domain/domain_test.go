package domain_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-service/core/profile/domain"
)

// memStore implements both store ports over a map.
type memStore struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]domain.Profile
	failWith error
	writes   int
}

func newMemStore() *memStore {
	return &memStore{rows: map[uuid.UUID]domain.Profile{}}
}

func (m *memStore) sorted() []domain.Profile {
	out := make([]domain.Profile, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (m *memStore) ListProfiles(context.Context) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.sorted(), nil
}

func (m *memStore) GetProfileByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (m *memStore) GetProfileByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, p := range m.sorted() {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memStore) CreateProfile(_ context.Context, params *domain.CreateProfileParams) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.writes++
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	p := domain.Profile{
		ID:                id,
		UserID:            params.UserID,
		FileID:            params.FileID,
		FileURI:           params.FileURI,
		FileThumbnailURI:  params.FileThumbnailURI,
		BankAccountName:   params.BankAccountName,
		BankAccountHolder: params.BankAccountHolder,
		BankAccountNumber: params.BankAccountNumber,
	}
	m.rows[id] = p
	return &p, nil
}

func (m *memStore) ModifyProfile(_ context.Context, id uuid.UUID, params *domain.ModifyProfileParams) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.writes++
	p, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p = params.Apply(p)
	m.rows[id] = p
	return &p, nil
}

func (m *memStore) DeleteProfile(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.writes++
	p, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	delete(m.rows, id)
	return &p, nil
}

func sampleParams(userID string) domain.CreateProfileParams {
	return domain.CreateProfileParams{
		UserID:            userID,
		FileID:            "f1",
		FileURI:           "https://files.example/f1",
		FileThumbnailURI:  "https://files.example/f1/thumb",
		BankAccountName:   "ACME Bank",
		BankAccountHolder: "Jane Doe",
		BankAccountNumber: "0001",
	}
}

func strPtr(s string) *string { return &s }

func newApp() (*domain.Application, *memStore) {
	store := newMemStore()
	return domain.NewApp(store, store), store
}

func TestCreateThenFind(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	created, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)
	require.False(t, created.ID.IsNil())
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, "0001", created.BankAccountNumber)

	found, err := app.FindProfile(ctx, created.ID.String())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *created, *found)
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	a, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)
	b, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestListProfiles(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	empty, err := app.ListProfiles(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := range 3 {
		_, err := app.CreateProfile(ctx, sampleParams(fmt.Sprintf("u%d", i)))
		require.NoError(t, err)
	}
	all, err := app.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindProfileAbsent(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	tests := []struct {
		name string
		id   string
	}{
		{"unknown uuid", uuid.Must(uuid.NewV4()).String()},
		{"malformed", "not-a-uuid"},
		{"empty", ""},
		{"nil uuid", uuid.Nil.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := app.FindProfile(ctx, tt.id)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestFindProfileByUserID(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	a, err := app.CreateProfile(ctx, sampleParams("owner"))
	require.NoError(t, err)
	b, err := app.CreateProfile(ctx, sampleParams("owner"))
	require.NoError(t, err)
	_, err = app.CreateProfile(ctx, sampleParams("other"))
	require.NoError(t, err)

	want := a.ID
	if b.ID.String() < want.String() {
		want = b.ID
	}
	got, err := app.FindProfileByUserID(ctx, "owner")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got.ID)

	missing, err := app.FindProfileByUserID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestModifyProfile(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	created, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)

	updated, err := app.ModifyProfile(ctx, created.ID.String(), domain.ModifyProfileParams{
		BankAccountNumber: strPtr("9999"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "9999", updated.BankAccountNumber)
	assert.Equal(t, created.FileURI, updated.FileURI)
	assert.Equal(t, created.UserID, updated.UserID)

	found, err := app.FindProfile(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, *updated, *found)
}

func TestModifyProfileTwiceIsStable(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	created, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)

	patch := domain.ModifyProfileParams{FileURI: strPtr("https://files.example/f2"), BankAccountHolder: strPtr("John Roe")}
	first, err := app.ModifyProfile(ctx, created.ID.String(), patch)
	require.NoError(t, err)
	second, err := app.ModifyProfile(ctx, created.ID.String(), patch)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, created.BankAccountNumber, second.BankAccountNumber)
	assert.Equal(t, created.FileID, second.FileID)
}

func TestModifyProfileEmptyPatchDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	app, store := newApp()

	created, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)
	writes := store.writes

	got, err := app.ModifyProfile(ctx, created.ID.String(), domain.ModifyProfileParams{})
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
	assert.Equal(t, writes, store.writes)

	_, err = app.ModifyProfile(ctx, uuid.Must(uuid.NewV4()).String(), domain.ModifyProfileParams{})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestModifyProfileNotFound(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	for _, id := range []string{"bogus", uuid.Must(uuid.NewV4()).String()} {
		_, err := app.ModifyProfile(ctx, id, domain.ModifyProfileParams{UserID: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrProfileNotFound, id)
	}
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp()

	created, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)

	deleted, err := app.DeleteProfile(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, *created, *deleted)

	got, err := app.FindProfile(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = app.DeleteProfile(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = app.DeleteProfile(ctx, "bogus")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestStoreErrorsAreMapped(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		cause error
		want  error
	}{
		{"duplicate", fmt.Errorf("insert: %w", domain.ErrDuplicateProfile), domain.ErrDuplicateProfile},
		{"invalid", domain.ErrInvalidData, domain.ErrInvalidData},
		{"unavailable", fmt.Errorf("dial: %w", domain.ErrUnavailable), domain.ErrUnavailable},
		{"unknown", errors.New("boom"), domain.ErrUnhandled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store := newApp()
			store.failWith = tt.cause

			_, err := app.CreateProfile(ctx, sampleParams("u1"))
			assert.ErrorIs(t, err, tt.want)

			_, err = app.ListProfiles(ctx)
			assert.ErrorIs(t, err, tt.want)

			_, err = app.FindProfileByUserID(ctx, "u1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestModifyParamsApply(t *testing.T) {
	base := domain.Profile{UserID: "u", FileID: "f", BankAccountName: "n"}
	p := &domain.ModifyProfileParams{FileID: strPtr(""), BankAccountName: strPtr("m")}

	got := p.Apply(base)
	assert.Equal(t, "u", got.UserID)
	assert.Equal(t, "", got.FileID)
	assert.Equal(t, "m", got.BankAccountName)
	assert.False(t, p.IsEmpty())

	var nilParams *domain.ModifyProfileParams
	assert.True(t, nilParams.IsEmpty())
	assert.Equal(t, base, nilParams.Apply(base))
}

func TestModifyProfileEmptyPatchReadsPrimary(t *testing.T) {
	ctx := context.Background()
	replica, primary := newMemStore(), newMemStore()
	app := domain.NewApp(replica, primary)

	created, err := app.CreateProfile(ctx, sampleParams("u1"))
	require.NoError(t, err)

	// the replica has not caught up yet
	stale, err := app.FindProfile(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Nil(t, stale)

	got, err := app.ModifyProfile(ctx, created.ID.String(), domain.ModifyProfileParams{})
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}
