package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// AuthzService decides whether a user may perform a (resource, action)
// operation by walking the user's groups and their attached policies.
type AuthzService interface {
	// Authorize resolves userID and reports whether the required permission
	// is granted. An unresolvable userID yields domain.ErrUserNotFound, an
	// authentication failure, distinct from a plain deny. The call is a
	// pure read: no store state changes, safe to repeat.
	Authorize(ctx context.Context, userID string, required domain.Permission) (bool, error)
}
