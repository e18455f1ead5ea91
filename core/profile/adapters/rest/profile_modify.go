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

	"profile-service/modules/api/serde"
	"profile-service/modules/middleware/problem"

	"github.com/labstack/echo/v4"
)

// ModifyProfile performs a partial update of a profile (PATCH semantics).
// Fields left out of the body are unchanged; an explicit null is rejected
// with 400 since no column accepts it. Returns 200 on success, 404 if not found.
func (p *ProfileAPI) ModifyProfile(c echo.Context) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return writeBadPathParam(c, "id", err)
	}

	var req ModifyProfileRequest
	if err := serde.ParseJsonBody(c.Request().Body, &req); err != nil {
		return writeBadRequest(c, "malformed request body", problem.WithInvalidParam("body", err.Error()))
	}

	params, nulled := req.toModifyParams()
	if nulled != "" {
		return writeBadRequest(c, "validation failed", problem.WithInvalidParam(nulled, "must not be null"))
	}

	updated, err := p.app.ModifyProfile(c.Request().Context(), id, params)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, mapProfile(*updated))
}
