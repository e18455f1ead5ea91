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

// DeleteProfile hard deletes a profile and returns what was stored.
func (app *Application) DeleteProfile(ctx context.Context, id string) (*Profile, error) {
	uid, ok := ParseID(id)
	if !ok {
		return nil, ErrProfileNotFound
	}
	deleted, err := app.writer.DeleteProfile(ctx, uid)
	if err != nil {
		return nil, mapStoreError(ctx, "delete profile", err)
	}
	slog.DebugContext(ctx, "deleted profile", slog.String("id", deleted.ID.String()))
	return deleted, nil
}
