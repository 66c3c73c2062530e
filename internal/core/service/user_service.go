package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// UserService implements user CRUD on top of the user repository. Uniqueness
// and group-reference enforcement live in the repository, atomic with the
// write; this layer validates field shape and hashes credentials.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.NewFieldError("username", "required")
	}
	if input.Email == "" {
		return nil, domain.NewFieldError("email", "required")
	}
	if input.Password == "" {
		return nil, domain.NewFieldError("password", "required")
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.NewFieldError("role", "must be one of admin, maintainer, user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         input.Role,
		Groups:       input.Groups,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	patch := domain.UserPatch{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Groups:    input.Groups,
	}
	if input.Username != nil && *input.Username == "" {
		return nil, domain.NewFieldError("username", "must not be empty")
	}
	if input.Email != nil && *input.Email == "" {
		return nil, domain.NewFieldError("email", "must not be empty")
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.NewFieldError("role", "must be one of admin, maintainer, user")
		}
		patch.Role = input.Role
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, domain.NewFieldError("password", "must not be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	updated, err := s.users.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// DeleteUser removes a user. An actor deleting their own account is refused:
// the system must never lock out the caller mid-session.
func (s *UserService) DeleteUser(ctx context.Context, input ports.DeleteUserInput) error {
	if input.ID == input.ActorID {
		return domain.ErrSelfDeletion
	}
	if err := s.users.Delete(ctx, input.ID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", input.ID).Str("actor_id", input.ActorID).Msg("user deleted")
	return nil
}
