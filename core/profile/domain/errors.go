package domain

import (
	"context"
	"errors"
	"log/slog"
)

var (
	ErrDuplicateProfile = errors.New("profile with the requested identifiers already exists")
	ErrInvalidData      = errors.New("invalid data provided for profile operations")
	ErrUnavailable      = errors.New("profile store unavailable")
	ErrUnhandled        = errors.New("unexpected error")
	ErrProfileNotFound  = errors.New("profile not found")
)

// surfaced are returned to callers unchanged, anything else becomes ErrUnhandled.
var surfaced = []error{
	ErrProfileNotFound,
	ErrDuplicateProfile,
	ErrInvalidData,
	ErrUnavailable,
}

func mapStoreError(ctx context.Context, op string, err error) error {
	for _, known := range surfaced {
		if errors.Is(err, known) {
			if known == ErrUnavailable {
				slog.WarnContext(ctx, "profile store unavailable", slog.String("op", op), slog.Any("error", err))
			}
			return known
		}
	}
	slog.ErrorContext(ctx, "unexpected error", slog.String("op", op), slog.Any("error", err))
	return ErrUnhandled
}
