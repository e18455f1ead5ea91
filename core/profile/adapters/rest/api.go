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
	"profile-service/core/profile/domain"

	"github.com/labstack/echo/v4"
)

// BasePath is where the profile routes live.
const BasePath = "/profiles"

// ProfileAPI implements the HTTP API handlers for profile operations.
// It acts as the REST adapter in the hexagonal architecture, translating
// HTTP requests into domain operations.
type ProfileAPI struct {
	app *domain.Application
}

// NewProfileAPI creates a new ProfileAPI instance with all dependencies.
func NewProfileAPI(reader domain.ProfileReadStore, writer domain.ProfileWriteStore) *ProfileAPI {
	return &ProfileAPI{
		app: domain.NewApp(reader, writer),
	}
}

// Handler returns an echo router serving every route under BasePath.
func (p *ProfileAPI) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	g := e.Group(BasePath)
	g.POST("", p.CreateProfile)
	g.GET("", p.ListProfiles)
	g.GET("/by-user/:userId", p.GetProfileByUserID)
	g.GET("/:id", p.GetProfile)
	g.PATCH("/:id", p.ModifyProfile)
	g.DELETE("/:id", p.DeleteProfile)

	return e
}
