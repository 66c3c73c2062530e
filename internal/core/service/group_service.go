package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// GroupService implements group CRUD. Name uniqueness and policy-reference
// enforcement live in the repository, atomic with the write.
type GroupService struct {
	groups ports.GroupRepository
	logger zerolog.Logger
}

func NewGroupService(groups ports.GroupRepository, logger zerolog.Logger) *GroupService {
	return &GroupService{groups: groups, logger: logger}
}

func (s *GroupService) CreateGroup(ctx context.Context, input ports.CreateGroupInput) (*domain.Group, error) {
	if input.Name == "" {
		return nil, domain.NewFieldError("name", "required")
	}

	now := time.Now().UTC()
	group := &domain.Group{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Policies:  input.Policies,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.groups.Create(ctx, group)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("group_id", created.ID).Str("name", created.Name).Msg("group created")
	return created, nil
}

func (s *GroupService) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.List(ctx)
}

func (s *GroupService) UpdateGroup(ctx context.Context, input ports.UpdateGroupInput) (*domain.Group, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, domain.NewFieldError("name", "must not be empty")
	}

	updated, err := s.groups.Update(ctx, input.ID, domain.GroupPatch{
		Name:     input.Name,
		Policies: input.Policies,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("group_id", updated.ID).Msg("group updated")
	return updated, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, id string) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("group_id", id).Msg("group deleted, memberships pruned")
	return nil
}
