// Package service implements the Connect handlers for bills, groups and accounts.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/patungan/internal/middleware"
	"github.com/mmynk/patungan/internal/storage"
)

var (
	errAuthRequired = errors.New("authentication required")
	errNotOwner     = errors.New("you do not own this resource")
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest runs the struct's validate tags and maps failures to InvalidArgument.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("%s: failed %q validation", fe.Namespace(), fe.Tag()))
		}
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// requireUser returns the authenticated user ID or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

// checkOwner returns PermissionDenied unless ownerID is the caller.
func checkOwner(ownerID, userID string) error {
	if ownerID != userID {
		return connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	return nil
}

// storeError converts a storage error into a Connect error and logs unexpected ones.
func storeError(logger *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		logger.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, fmt.Errorf("%s failed", op))
	}
}

// missingFrom returns the names in names that are not in existing, in order and without repeats.
func missingFrom(names, existing []string) []string {
	var missing []string
	for _, n := range names {
		if n == "" || slices.Contains(existing, n) || slices.Contains(missing, n) {
			continue
		}
		missing = append(missing, n)
	}
	return missing
}
