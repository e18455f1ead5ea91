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
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
)

// ValidationError names one rejected field and why.
type ValidationError struct {
	Field  string
	Reason string
}

// ExtractValidationErrors flattens a validator error into per-field reasons.
// Reasons never echo client input.
func ExtractValidationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []ValidationError
		for _, item := range multi {
			out = append(out, ExtractValidationErrors(item)...)
		}
		return out
	}

	var re *openapi3filter.RequestError
	if errors.As(err, &re) {
		// request body errors may carry their own MultiError
		var inner openapi3.MultiError
		if errors.As(re.Err, &inner) {
			return ExtractValidationErrors(inner)
		}
		return []ValidationError{fromRequestError(re)}
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return []ValidationError{{Field: fieldFromPointer(se.JSONPointer()), Reason: se.Reason}}
	}

	return []ValidationError{{Field: "request", Reason: "invalid value"}}
}

func fromRequestError(re *openapi3filter.RequestError) ValidationError {
	field := "body"
	if re.Parameter != nil {
		field = re.Parameter.Name
	}

	var se *openapi3.SchemaError
	if errors.As(re.Err, &se) {
		if re.Parameter == nil {
			field = fieldFromPointer(se.JSONPointer())
		}
		return ValidationError{Field: field, Reason: se.Reason}
	}
	return ValidationError{Field: field, Reason: SafeReason(re.Reason)}
}

// fieldFromPointer keeps the top-level property of a JSON pointer.
func fieldFromPointer(ptr []string) string {
	if len(ptr) == 0 || ptr[0] == "" {
		return "body"
	}
	return ptr[0]
}

// SafeReason reduces verbose reasons so client input is not reflected back.
func SafeReason(reason string) string {
	lower := strings.ToLower(reason)
	switch {
	case reason == "":
		return "invalid value"
	case strings.Contains(lower, "value is required but missing"):
		return "value is required but missing"
	case strings.Contains(lower, "content-type"):
		return "unsupported content type"
	case strings.Contains(lower, "doesn't match schema"):
		return "doesn't match schema"
	default:
		return "invalid value"
	}
}
