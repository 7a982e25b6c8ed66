// Package auth handles accounts and session tokens: bcrypt password credentials and
// HS256 JWTs carrying the user ID.
package auth

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// Authenticator registers and verifies users. The credential format belongs to the
// implementation.
type Authenticator interface {
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
	ValidateCredential(credential string) error
}
