// Package auth issues session tokens and verifies account credentials.
package auth

import (
	"context"

	"github.com/mmynk/patungan/internal/models"
)

// Authenticator registers accounts and verifies their credentials.
// Services depend on this interface so the credential scheme can change
// without touching bill or group code.
type Authenticator interface {
	// Register creates a new account. The credential format depends on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account whose credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether a credential is acceptable for registration.
	ValidateCredential(credential string) error
}

// Compile-time check.
var _ Authenticator = (*PasswordAuthenticator)(nil)
