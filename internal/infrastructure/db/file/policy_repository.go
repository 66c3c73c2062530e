package file

import (
	"context"
	"sort"
	"time"

	"github.com/gatewise/iam-system/internal/api/metrics"
	"github.com/gatewise/iam-system/internal/core/domain"
)

// PolicyRepository implements ports.PolicyRepository on the snapshot store.
type PolicyRepository struct {
	store *Store
}

func NewPolicyRepository(store *Store) *PolicyRepository {
	return &PolicyRepository{store: store}
}

func (r *PolicyRepository) Create(_ context.Context, policy *domain.Policy) (*domain.Policy, error) {
	created := clonePolicy(policy)
	err := r.store.mutate(func() error {
		if r.store.policyNameTakenLocked(created.Name, "") {
			return domain.ErrPolicyNameTaken
		}
		r.store.policies[created.ID] = clonePolicy(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("policy", "create").Inc()
	return created, nil
}

func (r *PolicyRepository) GetByID(_ context.Context, id string) (*domain.Policy, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.policies[id]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}
	return clonePolicy(p), nil
}

func (r *PolicyRepository) List(_ context.Context) ([]*domain.Policy, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	policies := make([]*domain.Policy, 0, len(r.store.policies))
	for _, p := range r.store.policies {
		policies = append(policies, clonePolicy(p))
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].Name < policies[j].Name })
	return policies, nil
}

func (r *PolicyRepository) Update(_ context.Context, id string, patch domain.PolicyPatch) (*domain.Policy, error) {
	var updated *domain.Policy
	err := r.store.mutate(func() error {
		existing, ok := r.store.policies[id]
		if !ok {
			return domain.ErrPolicyNotFound
		}
		if patch.Name != nil && r.store.policyNameTakenLocked(*patch.Name, id) {
			return domain.ErrPolicyNameTaken
		}
		next := patch.Apply(*clonePolicy(existing), time.Now().UTC())
		r.store.policies[id] = &next
		updated = clonePolicy(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("policy", "update").Inc()
	return updated, nil
}

// Delete removes the policy and prunes its id from every group's policy set
// in the same atomic mutation.
func (r *PolicyRepository) Delete(_ context.Context, id string) error {
	err := r.store.mutate(func() error {
		if _, ok := r.store.policies[id]; !ok {
			return domain.ErrPolicyNotFound
		}
		delete(r.store.policies, id)

		now := time.Now().UTC()
		for _, g := range r.store.groups {
			pruned := false
			kept := g.Policies[:0]
			for _, pid := range g.Policies {
				if pid == id {
					pruned = true
					continue
				}
				kept = append(kept, pid)
			}
			if pruned {
				g.Policies = kept
				g.UpdatedAt = now
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.EntityMutationsTotal.WithLabelValues("policy", "delete").Inc()
	return nil
}

func (r *PolicyRepository) IsNameUnique(_ context.Context, name, excludeID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return !r.store.policyNameTakenLocked(name, excludeID), nil
}

func (r *PolicyRepository) ValidatePolicyIDs(_ context.Context, ids []string) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if missing := r.store.missingPolicyIDsLocked(ids); len(missing) > 0 {
		return domain.NewDanglingRefError("policies", missing)
	}
	return nil
}
