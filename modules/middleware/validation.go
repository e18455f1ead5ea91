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

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"profile-service/modules/middleware/problem"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"
)

// ValidationErrorHandler writes the response for a request rejected by the
// OpenAPI validator. statusCode is 404 or 405 for unknown routes, 400 otherwise.
type ValidationErrorHandler func(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, statusCode int)

// OpenAPIValidation rejects requests whose shape does not match doc.
// Only parameters and bodies are checked; servers and security are ignored.
func OpenAPIValidation(doc *openapi3.T, errorHandler ValidationErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = ProblemValidationErrorHandler
	}

	opts := &nethttpmiddleware.Options{
		Options: openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		DoNotValidateServers:  true,
		SilenceServersWarning: true,
		ErrorHandlerWithOpts: func(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, eopts nethttpmiddleware.ErrorHandlerOpts) {
			status := eopts.StatusCode
			switch {
			case errors.Is(err, routers.ErrMethodNotAllowed):
				status = http.StatusMethodNotAllowed
			case errors.Is(err, routers.ErrPathNotFound):
				status = http.StatusNotFound
			case status == 0:
				status = http.StatusBadRequest
			}
			errorHandler(ctx, err, w, r, status)
		},
	}

	return nethttpmiddleware.OapiRequestValidatorWithOptions(doc, opts)
}

// ProblemValidationErrorHandler renders validation failures as problem
// documents listing the offending fields.
func ProblemValidationErrorHandler(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, statusCode int) {
	instance := problem.WithInstance(r.URL.Path)

	switch statusCode {
	case http.StatusNotFound:
		problem.Write(w, problem.NotFound("no such route", instance))
		return
	case http.StatusMethodNotAllowed:
		problem.Write(w, problem.MethodNotAllowed("method not allowed", instance))
		return
	}

	slog.DebugContext(ctx, "request rejected by validator", slog.Any("error", err))

	opts := []problem.Option{instance}
	for _, ve := range ExtractValidationErrors(err) {
		opts = append(opts, problem.WithInvalidParam(ve.Field, ve.Reason))
	}
	problem.Write(w, problem.BadRequest("request does not match the API schema", opts...))
}
