package domain

import (
	"context"
	"errors"
)

// ListProfiles returns all profiles; there is no pagination.
func (app *Application) ListProfiles(ctx context.Context) ([]Profile, error) {
	profiles, err := app.reader.ListProfiles(ctx)
	if err != nil {
		return nil, mapStoreError(ctx, "list profiles", err)
	}
	if profiles == nil {
		profiles = []Profile{}
	}
	return profiles, nil
}

// FindProfile returns (nil, nil) when no profile has the given id.
func (app *Application) FindProfile(ctx context.Context, id string) (*Profile, error) {
	uid, ok := ParseID(id)
	if !ok {
		return nil, nil
	}
	prof, err := app.reader.GetProfileByID(ctx, uid)
	if err == nil {
		return prof, nil
	}
	if errors.Is(err, ErrProfileNotFound) {
		return nil, nil
	}
	return nil, mapStoreError(ctx, "find profile", err)
}

// FindProfileByUserID returns the first profile of userID, or (nil, nil).
func (app *Application) FindProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	prof, err := app.reader.GetProfileByUserID(ctx, userID)
	if err == nil {
		return prof, nil
	}
	if errors.Is(err, ErrProfileNotFound) {
		return nil, nil
	}
	return nil, mapStoreError(ctx, "find profile by user", err)
}
