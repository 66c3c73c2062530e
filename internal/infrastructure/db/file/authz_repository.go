package file

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// AuthzRepository implements ports.AuthzRepository on the snapshot store.
// The whole user-groups-policies walk runs under one read lock, so the view
// reflects a single store state even while writers are active.
type AuthzRepository struct {
	store *Store
}

func NewAuthzRepository(store *Store) *AuthzRepository {
	return &AuthzRepository{store: store}
}

func (r *AuthzRepository) GetResolutionView(_ context.Context, userID string) (*ports.ResolutionView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	view := &ports.ResolutionView{
		User:     cloneUser(u),
		Policies: make(map[string]*domain.Policy),
	}
	for _, groupID := range u.Groups {
		group, ok := r.store.groups[groupID]
		if !ok {
			continue
		}
		for _, policyID := range group.Policies {
			if _, done := view.Policies[policyID]; done {
				continue
			}
			if policy, ok := r.store.policies[policyID]; ok {
				view.Policies[policyID] = clonePolicy(policy)
			}
		}
	}
	return view, nil
}
