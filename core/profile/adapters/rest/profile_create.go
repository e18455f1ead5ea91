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

package rest

import (
	"fmt"
	"net/http"

	"profile-service/modules/api/serde"
	"profile-service/modules/middleware/problem"

	"github.com/labstack/echo/v4"
)

// CreateProfile creates a new profile.
// Returns 201 with Location header on success, 400 for malformed bodies,
// 409 for duplicates and 422 for other constraint violations.
func (p *ProfileAPI) CreateProfile(c echo.Context) error {
	var req CreateProfileRequest
	if err := serde.ParseJsonBody(c.Request().Body, &req); err != nil {
		return writeBadRequest(c, "malformed request body", problem.WithInvalidParam("body", err.Error()))
	}

	params, missing := req.toCreateParams()
	if missing != "" {
		return writeBadRequest(c, "validation failed", problem.WithInvalidParam(missing, "field is required"))
	}

	profile, err := p.app.CreateProfile(c.Request().Context(), params)
	if err != nil {
		return writeDomainError(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s/%s", BasePath, profile.ID))
	return c.JSON(http.StatusCreated, mapProfile(*profile))
}
