package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user. Password is the
// plaintext credential; the service hashes it before it touches the store.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      domain.Role
	Groups    []string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	ID        string
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	Role      *domain.Role
	Groups    *[]string
}

// DeleteUserInput identifies the user to delete and the authenticated actor,
// so the service can refuse self-deletion.
type DeleteUserInput struct {
	ID      string
	ActorID string
}

// UserService defines use-case operations for users.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, input DeleteUserInput) error
}
