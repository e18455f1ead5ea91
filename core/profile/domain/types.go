package domain

import (
	"github.com/gofrs/uuid/v5"
)

type (
	Application struct {
		reader ProfileReadStore
		writer ProfileWriteStore
	}

	// Profile is the domain model used by the application layer.
	Profile struct {
		ID                uuid.UUID
		UserID            string
		FileID            string
		FileURI           string
		FileThumbnailURI  string
		BankAccountName   string
		BankAccountHolder string
		BankAccountNumber string
	}

	// CreateProfileParams holds every caller supplied field of a new profile.
	// The id is assigned by the store.
	CreateProfileParams struct {
		UserID            string
		FileID            string
		FileURI           string
		FileThumbnailURI  string
		BankAccountName   string
		BankAccountHolder string
		BankAccountNumber string
	}

	// ModifyProfileParams is a partial update: nil fields are left untouched.
	ModifyProfileParams struct {
		UserID            *string
		FileID            *string
		FileURI           *string
		FileThumbnailURI  *string
		BankAccountName   *string
		BankAccountHolder *string
		BankAccountNumber *string
	}
)

// IsEmpty reports whether no field is set.
func (p *ModifyProfileParams) IsEmpty() bool {
	return p == nil ||
		p.UserID == nil &&
			p.FileID == nil &&
			p.FileURI == nil &&
			p.FileThumbnailURI == nil &&
			p.BankAccountName == nil &&
			p.BankAccountHolder == nil &&
			p.BankAccountNumber == nil
}

// Apply returns a copy of prof with the set fields overwritten.
func (p *ModifyProfileParams) Apply(prof Profile) Profile {
	if p == nil {
		return prof
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&prof.UserID, p.UserID)
	set(&prof.FileID, p.FileID)
	set(&prof.FileURI, p.FileURI)
	set(&prof.FileThumbnailURI, p.FileThumbnailURI)
	set(&prof.BankAccountName, p.BankAccountName)
	set(&prof.BankAccountHolder, p.BankAccountHolder)
	set(&prof.BankAccountNumber, p.BankAccountNumber)
	return prof
}

// ParseID converts a wire id into a uuid. Ids that do not parse can never
// have been assigned by the store, so callers treat them as absent.
func ParseID(id string) (uuid.UUID, bool) {
	uid, err := uuid.FromString(id)
	if err != nil || uid.IsNil() {
		return uuid.Nil, false
	}
	return uid, true
}
