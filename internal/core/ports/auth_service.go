package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// AuthService authenticates credentials and issues tokens.
type AuthService interface {
	// Login verifies username+password and returns a signed token plus the
	// authenticated user. A bad username or password yields
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
