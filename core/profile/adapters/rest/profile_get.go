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
	"net/http"

	"profile-service/core/profile/domain"
	"profile-service/modules/etag"

	"github.com/labstack/echo/v4"
)

// GetProfile returns a single profile by id, 404 when absent.
// Responses carry an ETag; a matching If-None-Match yields 304.
func (p *ProfileAPI) GetProfile(c echo.Context) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return writeBadPathParam(c, "id", err)
	}
	profile, err := p.app.FindProfile(c.Request().Context(), id)
	return respondFound(c, profile, err)
}

// GetProfileByUserID returns the first profile owned by the user, 404 when absent.
func (p *ProfileAPI) GetProfileByUserID(c echo.Context) error {
	userID, err := pathParam(c, "userId")
	if err != nil {
		return writeBadPathParam(c, "userId", err)
	}
	profile, err := p.app.FindProfileByUserID(c.Request().Context(), userID)
	return respondFound(c, profile, err)
}

func respondFound(c echo.Context, profile *domain.Profile, err error) error {
	if err != nil {
		return writeDomainError(c, err)
	}
	if profile == nil {
		return writeDomainError(c, domain.ErrProfileNotFound)
	}
	body := mapProfile(*profile)
	tag, err := etag.Of(body)
	if err != nil {
		return c.JSON(http.StatusOK, body)
	}
	c.Response().Header().Set("ETag", tag)
	if etag.Matches(c.Request().Header.Get("If-None-Match"), tag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSON(http.StatusOK, body)
}
