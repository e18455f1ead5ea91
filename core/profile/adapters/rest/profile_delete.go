// Copyright 2025 Nguyen Nhat Nguyen
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

package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DeleteProfile hard deletes a profile and echoes its prior state.
// Returns 200 on success, 404 if not found.
func (p *ProfileAPI) DeleteProfile(c echo.Context) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return writeBadPathParam(c, "id", err)
	}
	deleted, err := p.app.DeleteProfile(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, mapProfile(*deleted))
}
