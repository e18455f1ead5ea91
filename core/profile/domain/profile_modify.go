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
	"log/slog"
)

// ModifyProfile applies a partial update: only provided fields are updated.
// An empty update returns the stored profile unchanged, read from the primary
// so a write made just before is visible.
func (app *Application) ModifyProfile(ctx context.Context, id string, params ModifyProfileParams) (*Profile, error) {
	uid, ok := ParseID(id)
	if !ok {
		return nil, ErrProfileNotFound
	}

	if params.IsEmpty() {
		prof, err := app.writer.GetProfileByID(ctx, uid)
		if err != nil {
			return nil, mapStoreError(ctx, "modify profile", err)
		}
		return prof, nil
	}

	updated, err := app.writer.ModifyProfile(ctx, uid, &params)
	if err != nil {
		return nil, mapStoreError(ctx, "modify profile", err)
	}
	slog.DebugContext(ctx, "modified profile", slog.String("id", updated.ID.String()))
	return updated, nil
}
