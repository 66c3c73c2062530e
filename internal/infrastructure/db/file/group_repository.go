package file

import (
	"context"
	"sort"
	"time"

	"github.com/gatewise/iam-system/internal/api/metrics"
	"github.com/gatewise/iam-system/internal/core/domain"
)

// GroupRepository implements ports.GroupRepository on the snapshot store.
type GroupRepository struct {
	store *Store
}

func NewGroupRepository(store *Store) *GroupRepository {
	return &GroupRepository{store: store}
}

func (r *GroupRepository) Create(_ context.Context, group *domain.Group) (*domain.Group, error) {
	created := cloneGroup(group)
	err := r.store.mutate(func() error {
		if r.store.groupNameTakenLocked(created.Name, "") {
			return domain.ErrGroupNameTaken
		}
		if missing := r.store.missingPolicyIDsLocked(created.Policies); len(missing) > 0 {
			return domain.NewDanglingRefError("policies", missing)
		}
		created.Policies = domain.DedupeIDs(created.Policies)
		r.store.groups[created.ID] = cloneGroup(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("group", "create").Inc()
	return created, nil
}

func (r *GroupRepository) GetByID(_ context.Context, id string) (*domain.Group, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	g, ok := r.store.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return cloneGroup(g), nil
}

func (r *GroupRepository) List(_ context.Context) ([]*domain.Group, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	groups := make([]*domain.Group, 0, len(r.store.groups))
	for _, g := range r.store.groups {
		groups = append(groups, cloneGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (r *GroupRepository) Update(_ context.Context, id string, patch domain.GroupPatch) (*domain.Group, error) {
	var updated *domain.Group
	err := r.store.mutate(func() error {
		existing, ok := r.store.groups[id]
		if !ok {
			return domain.ErrGroupNotFound
		}
		if patch.Name != nil && r.store.groupNameTakenLocked(*patch.Name, id) {
			return domain.ErrGroupNameTaken
		}
		if patch.Policies != nil {
			if missing := r.store.missingPolicyIDsLocked(*patch.Policies); len(missing) > 0 {
				return domain.NewDanglingRefError("policies", missing)
			}
		}
		next := patch.Apply(*cloneGroup(existing), time.Now().UTC())
		r.store.groups[id] = &next
		updated = cloneGroup(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("group", "update").Inc()
	return updated, nil
}

// Delete removes the group and prunes its id from every user's group set in
// the same atomic mutation, so no dangling membership survives.
func (r *GroupRepository) Delete(_ context.Context, id string) error {
	err := r.store.mutate(func() error {
		if _, ok := r.store.groups[id]; !ok {
			return domain.ErrGroupNotFound
		}
		delete(r.store.groups, id)

		now := time.Now().UTC()
		for _, u := range r.store.users {
			if !u.InGroup(id) {
				continue
			}
			kept := u.Groups[:0]
			for _, gid := range u.Groups {
				if gid != id {
					kept = append(kept, gid)
				}
			}
			u.Groups = kept
			u.UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.EntityMutationsTotal.WithLabelValues("group", "delete").Inc()
	return nil
}

func (r *GroupRepository) IsNameUnique(_ context.Context, name, excludeID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return !r.store.groupNameTakenLocked(name, excludeID), nil
}

func (r *GroupRepository) ValidateGroupIDs(_ context.Context, ids []string) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if missing := r.store.missingGroupIDsLocked(ids); len(missing) > 0 {
		return domain.NewDanglingRefError("groups", missing)
	}
	return nil
}
