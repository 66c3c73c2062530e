package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// PermissionInput is a single (resource, action) pair as supplied by callers.
type PermissionInput struct {
	Resource string
	Action   string
}

// CreatePolicyInput carries all data needed to create a policy.
type CreatePolicyInput struct {
	Name        string
	Permissions []PermissionInput
}

// UpdatePolicyInput is a partial update; nil fields are left untouched.
type UpdatePolicyInput struct {
	ID          string
	Name        *string
	Permissions *[]PermissionInput
}

// PolicyService defines use-case operations for policies.
type PolicyService interface {
	CreatePolicy(ctx context.Context, input CreatePolicyInput) (*domain.Policy, error)
	GetPolicy(ctx context.Context, id string) (*domain.Policy, error)
	ListPolicies(ctx context.Context) ([]*domain.Policy, error)
	UpdatePolicy(ctx context.Context, input UpdatePolicyInput) (*domain.Policy, error)
	DeletePolicy(ctx context.Context, id string) error
}
