package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Create and Update enforce username/email uniqueness and group-reference
// validity atomically with the write, so racing callers cannot slip a
// duplicate past a separate check.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// AddToGroup adds groupID to the user's group set. Idempotent: adding a
	// group the user is already in is a no-op success.
	AddToGroup(ctx context.Context, userID, groupID string) error
	// IsUsernameUnique reports whether username (case-sensitive) is unused by
	// any user other than excludeID. Pass excludeID "" for creations.
	IsUsernameUnique(ctx context.Context, username, excludeID string) (bool, error)
	// IsEmailUnique reports whether email (case-insensitive) is unused by any
	// user other than excludeID.
	IsEmailUnique(ctx context.Context, email, excludeID string) (bool, error)
}
