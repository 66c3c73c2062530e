package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// PolicyService implements policy CRUD. Name uniqueness lives in the
// repository, atomic with the write.
type PolicyService struct {
	policies ports.PolicyRepository
	logger   zerolog.Logger
}

func NewPolicyService(policies ports.PolicyRepository, logger zerolog.Logger) *PolicyService {
	return &PolicyService{policies: policies, logger: logger}
}

func (s *PolicyService) CreatePolicy(ctx context.Context, input ports.CreatePolicyInput) (*domain.Policy, error) {
	if input.Name == "" {
		return nil, domain.NewFieldError("name", "required")
	}
	perms, err := toPermissions(input.Permissions)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	policy := &domain.Policy{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.policies.Create(ctx, policy)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("policy_id", created.ID).Str("name", created.Name).Msg("policy created")
	return created, nil
}

func (s *PolicyService) GetPolicy(ctx context.Context, id string) (*domain.Policy, error) {
	return s.policies.GetByID(ctx, id)
}

func (s *PolicyService) ListPolicies(ctx context.Context) ([]*domain.Policy, error) {
	return s.policies.List(ctx)
}

func (s *PolicyService) UpdatePolicy(ctx context.Context, input ports.UpdatePolicyInput) (*domain.Policy, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, domain.NewFieldError("name", "must not be empty")
	}

	patch := domain.PolicyPatch{Name: input.Name}
	if input.Permissions != nil {
		perms, err := toPermissions(*input.Permissions)
		if err != nil {
			return nil, err
		}
		patch.Permissions = &perms
	}

	updated, err := s.policies.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("policy_id", updated.ID).Msg("policy updated")
	return updated, nil
}

func (s *PolicyService) DeletePolicy(ctx context.Context, id string) error {
	if err := s.policies.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("policy_id", id).Msg("policy deleted, group links pruned")
	return nil
}

// toPermissions converts permission inputs, rejecting pairs with an empty
// resource or action. Duplicates are kept; they carry no extra meaning.
func toPermissions(inputs []ports.PermissionInput) ([]domain.Permission, error) {
	perms := make([]domain.Permission, 0, len(inputs))
	for _, in := range inputs {
		if in.Resource == "" {
			return nil, domain.NewFieldError("permissions.resource", "required")
		}
		if in.Action == "" {
			return nil, domain.NewFieldError("permissions.action", "required")
		}
		perms = append(perms, domain.Permission{Resource: in.Resource, Action: in.Action})
	}
	return perms, nil
}
