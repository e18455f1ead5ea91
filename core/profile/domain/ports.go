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

package domain

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// ProfileReadStore defines the port for read operations on profiles.
//
// Read/Write Separation Pattern:
// This interface is separated from ProfileWriteStore so implementations can
// route reads to replica databases while writes stay on the primary.
//
// Implementation Notes:
//   - All methods are read-only and should never modify data
//   - Each method is a single statement, no transaction is needed
type ProfileReadStore interface {
	// ListProfiles returns every stored profile ordered by id.
	// An empty table yields an empty, non-nil slice.
	ListProfiles(ctx context.Context) ([]Profile, error)

	// GetProfileByID retrieves a single profile by its unique identifier.
	// Returns ErrProfileNotFound if the profile doesn't exist.
	GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// GetProfileByUserID returns the first profile owned by userID in id order.
	// user_id is not unique, so when several rows match the earliest one wins.
	// Returns ErrProfileNotFound if no profile matches.
	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)
}

// ProfileWriteStore defines the port for write operations on profiles.
//
// Every method executes exactly one statement on the primary without an
// explicit transaction; atomicity is whatever the storage engine gives a
// single-row statement. There is no optimistic concurrency: the last write wins.
type ProfileWriteStore interface {
	// GetProfileByID reads a profile from the primary, for write paths that
	// must not observe replication lag.
	//
	// Returns ErrProfileNotFound if no row has the given id.
	GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// CreateProfile inserts a new profile and returns it with its generated id.
	//
	// Returns ErrDuplicateProfile on a unique violation and ErrInvalidData on
	// any other constraint violation.
	CreateProfile(ctx context.Context, params *CreateProfileParams) (*Profile, error)

	// ModifyProfile performs a partial update (PATCH semantics).
	// Only the non-nil fields of params are written; others remain unchanged.
	//
	// Returns ErrProfileNotFound if no row has the given id.
	ModifyProfile(ctx context.Context, id uuid.UUID, params *ModifyProfileParams) (*Profile, error)

	// DeleteProfile hard deletes the profile and returns its prior state.
	//
	// Returns ErrProfileNotFound if no row has the given id.
	DeleteProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
}
