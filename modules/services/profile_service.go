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

package services

import (
	"net/http"

	"profile-service/core/profile/adapters/rest"
	"profile-service/modules/middleware"
	"profile-service/modules/server"

	"github.com/getkin/kin-openapi/openapi3"
)

var _ server.RegistrableService = (*ProfileAPIService)(nil)

// ProfileAPIService mounts the profile REST adapter behind request validation.
type ProfileAPIService struct {
	api *rest.ProfileAPI
	doc *openapi3.T
}

// NewProfileAPIService validates requests against doc; a nil doc disables validation.
func NewProfileAPIService(api *rest.ProfileAPI, doc *openapi3.T) *ProfileAPIService {
	return &ProfileAPIService{api: api, doc: doc}
}

// Register mounts the profile routes under rest.BasePath.
func (s *ProfileAPIService) Register(mux *http.ServeMux) {
	var h http.Handler = s.api.Handler()
	if s.doc != nil {
		h = middleware.OpenAPIValidation(s.doc, middleware.ProblemValidationErrorHandler)(h)
	}
	mux.Handle(rest.BasePath, h)
	mux.Handle(rest.BasePath+"/", h)
}
