package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// CreateGroupInput carries all data needed to create a group.
type CreateGroupInput struct {
	Name     string
	Policies []string
}

// UpdateGroupInput is a partial update; nil fields are left untouched.
type UpdateGroupInput struct {
	ID       string
	Name     *string
	Policies *[]string
}

// GroupService defines use-case operations for groups.
type GroupService interface {
	CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error)
	GetGroup(ctx context.Context, id string) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]*domain.Group, error)
	UpdateGroup(ctx context.Context, input UpdateGroupInput) (*domain.Group, error)
	DeleteGroup(ctx context.Context, id string) error
}
