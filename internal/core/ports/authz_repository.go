package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// ResolutionView is everything one authorization decision needs: the user
// plus the policies reachable through its group memberships, captured from a
// single store state. Policies is keyed by policy id and already deduplicated
// across groups.
type ResolutionView struct {
	User     *domain.User
	Policies map[string]*domain.Policy
}

// AuthzRepository reads the resolution view atomically with respect to
// writers. Composing per-entity reads would let a mutation commit between
// them, producing a decision that matches no store state.
type AuthzRepository interface {
	// GetResolutionView resolves userID and collects the reachable policies
	// in one consistent read. An unresolvable userID yields
	// domain.ErrUserNotFound.
	GetResolutionView(ctx context.Context, userID string) (*ResolutionView, error)
}
