package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// GroupRepository defines persistence operations for groups.
//
// Deleting a group cascades: its id is pruned from every user's group set in
// the same atomic mutation.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) (*domain.Group, error)
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
	Update(ctx context.Context, id string, patch domain.GroupPatch) (*domain.Group, error)
	Delete(ctx context.Context, id string) error
	// IsNameUnique reports whether name (case-insensitive) is unused by any
	// group other than excludeID.
	IsNameUnique(ctx context.Context, name, excludeID string) (bool, error)
	// ValidateGroupIDs checks that every id resolves to an existing group.
	// On failure it returns a domain.ValidationError naming every offending
	// id; the caller must reject the whole write.
	ValidateGroupIDs(ctx context.Context, ids []string) error
}
