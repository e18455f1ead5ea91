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
	"net/url"

	"profile-service/core/profile/domain"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/nullable"
	"github.com/oapi-codegen/runtime/types"
)

type (
	// Profile is the wire shape of a stored profile.
	Profile struct {
		Id                types.UUID `json:"id"`
		UserId            string     `json:"userId"`
		FileId            string     `json:"fileId"`
		FileUri           string     `json:"fileUri"`
		FileThumbnailUri  string     `json:"fileThumbnailUri"`
		BankAccountName   string     `json:"bankAccountName"`
		BankAccountHolder string     `json:"bankAccountHolder"`
		BankAccountNumber string     `json:"bankAccountNumber"`
	}

	// CreateProfileRequest uses pointers so a missing field is told apart
	// from an empty string.
	CreateProfileRequest struct {
		UserId            *string `json:"userId"`
		FileId            *string `json:"fileId"`
		FileUri           *string `json:"fileUri"`
		FileThumbnailUri  *string `json:"fileThumbnailUri"`
		BankAccountName   *string `json:"bankAccountName"`
		BankAccountHolder *string `json:"bankAccountHolder"`
		BankAccountNumber *string `json:"bankAccountNumber"`
	}

	// ModifyProfileRequest carries tri-state fields (unset/null/value).
	ModifyProfileRequest struct {
		UserId            nullable.Nullable[string] `json:"userId,omitempty"`
		FileId            nullable.Nullable[string] `json:"fileId,omitempty"`
		FileUri           nullable.Nullable[string] `json:"fileUri,omitempty"`
		FileThumbnailUri  nullable.Nullable[string] `json:"fileThumbnailUri,omitempty"`
		BankAccountName   nullable.Nullable[string] `json:"bankAccountName,omitempty"`
		BankAccountHolder nullable.Nullable[string] `json:"bankAccountHolder,omitempty"`
		BankAccountNumber nullable.Nullable[string] `json:"bankAccountNumber,omitempty"`
	}
)

// mapProfile converts a domain profile to its response model.
func mapProfile(p domain.Profile) Profile {
	return Profile{
		Id:                types.UUID(p.ID),
		UserId:            p.UserID,
		FileId:            p.FileID,
		FileUri:           p.FileURI,
		FileThumbnailUri:  p.FileThumbnailURI,
		BankAccountName:   p.BankAccountName,
		BankAccountHolder: p.BankAccountHolder,
		BankAccountNumber: p.BankAccountNumber,
	}
}

// mapProfiles never returns nil so an empty list encodes as [].
func mapProfiles(profiles []domain.Profile) []Profile {
	result := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, mapProfile(p))
	}
	return result
}

// toCreateParams reports the first missing field by its wire name.
func (r *CreateProfileRequest) toCreateParams() (domain.CreateProfileParams, string) {
	var params domain.CreateProfileParams
	fields := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"userId", r.UserId, &params.UserID},
		{"fileId", r.FileId, &params.FileID},
		{"fileUri", r.FileUri, &params.FileURI},
		{"fileThumbnailUri", r.FileThumbnailUri, &params.FileThumbnailURI},
		{"bankAccountName", r.BankAccountName, &params.BankAccountName},
		{"bankAccountHolder", r.BankAccountHolder, &params.BankAccountHolder},
		{"bankAccountNumber", r.BankAccountNumber, &params.BankAccountNumber},
	}
	for _, f := range fields {
		if f.src == nil {
			return domain.CreateProfileParams{}, f.name
		}
		*f.dst = *f.src
	}
	return params, ""
}

// toModifyParams reports the first field explicitly set to null.
// Every column is NOT NULL, so null can never be stored.
func (r *ModifyProfileRequest) toModifyParams() (domain.ModifyProfileParams, string) {
	var params domain.ModifyProfileParams
	fields := []struct {
		name string
		src  nullable.Nullable[string]
		dst  **string
	}{
		{"userId", r.UserId, &params.UserID},
		{"fileId", r.FileId, &params.FileID},
		{"fileUri", r.FileUri, &params.FileURI},
		{"fileThumbnailUri", r.FileThumbnailUri, &params.FileThumbnailURI},
		{"bankAccountName", r.BankAccountName, &params.BankAccountName},
		{"bankAccountHolder", r.BankAccountHolder, &params.BankAccountHolder},
		{"bankAccountNumber", r.BankAccountNumber, &params.BankAccountNumber},
	}
	for _, f := range fields {
		if !f.src.IsSpecified() {
			continue
		}
		if f.src.IsNull() {
			return domain.ModifyProfileParams{}, f.name
		}
		v := f.src.MustGet()
		*f.dst = &v
	}
	return params, ""
}

// pathParam returns the decoded value of a path parameter. echo routes on
// URL.RawPath when the client escaped a reserved character and leaves the
// parameter encoded in that case.
func pathParam(c echo.Context, name string) (string, error) {
	return url.PathUnescape(c.Param(name))
}
