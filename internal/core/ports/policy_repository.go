package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// PolicyRepository defines persistence operations for policies.
//
// Deleting a policy cascades: its id is pruned from every group's policy set
// in the same atomic mutation.
type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.Policy) (*domain.Policy, error)
	GetByID(ctx context.Context, id string) (*domain.Policy, error)
	List(ctx context.Context) ([]*domain.Policy, error)
	Update(ctx context.Context, id string, patch domain.PolicyPatch) (*domain.Policy, error)
	Delete(ctx context.Context, id string) error
	// IsNameUnique reports whether name (case-insensitive) is unused by any
	// policy other than excludeID.
	IsNameUnique(ctx context.Context, name, excludeID string) (bool, error)
	// ValidatePolicyIDs checks that every id resolves to an existing policy.
	// On failure it returns a domain.ValidationError naming every offending
	// id; the caller must reject the whole write.
	ValidatePolicyIDs(ctx context.Context, ids []string) error
}
