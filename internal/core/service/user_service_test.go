package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass1234",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	cases := []struct {
		name  string
		input ports.CreateUserInput
	}{
		{"missing username", ports.CreateUserInput{Email: "a@b.c", Password: "pass1234", Role: domain.RoleUser}},
		{"missing email", ports.CreateUserInput{Username: "a", Password: "pass1234", Role: domain.RoleUser}},
		{"missing password", ports.CreateUserInput{Username: "a", Email: "a@b.c", Role: domain.RoleUser}},
		{"bad role", ports.CreateUserInput{Username: "a", Email: "a@b.c", Password: "pass1234", Role: "superuser"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateUser(context.Background(), tc.input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	input := ports.CreateUserInput{Username: "bob", Email: "bob@example.com", Password: "pass1234", Role: domain.RoleUser}
	if _, err := svc.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	input.Email = "other@example.com"
	if _, err := svc.CreateUser(context.Background(), input); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "erin", Email: "erin@example.com", Password: "original1", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPass := "replaced1"
	updated, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{ID: user.ID, Password: &newPass})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("replaced1")); err != nil {
		t.Fatalf("updated hash does not match new password: %v", err)
	}
	if updated.Username != "erin" {
		t.Fatalf("partial update must not touch other fields, got username %q", updated.Username)
	}
}

func TestUserService_UpdateUser_RejectsBadRole(t *testing.T) {
	repo := newStubUserRepo()
	user := repo.add(&domain.User{Username: "frank", Email: "frank@example.com", Role: domain.RoleUser})
	svc := NewUserService(repo, zerolog.Nop())

	bad := domain.Role("owner")
	if _, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{ID: user.ID, Role: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_DeleteUser_RefusesSelf(t *testing.T) {
	repo := newStubUserRepo()
	user := repo.add(&domain.User{Username: "grace", Email: "grace@example.com", Role: domain.RoleAdmin})
	svc := NewUserService(repo, zerolog.Nop())

	err := svc.DeleteUser(context.Background(), ports.DeleteUserInput{ID: user.ID, ActorID: user.ID})
	if !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), user.ID); err != nil {
		t.Fatalf("user must survive refused self-deletion: %v", err)
	}
}

func TestUserService_DeleteUser_OtherUser(t *testing.T) {
	repo := newStubUserRepo()
	admin := repo.add(&domain.User{Username: "root", Email: "root@example.com", Role: domain.RoleAdmin})
	victim := repo.add(&domain.User{Username: "henry", Email: "henry@example.com", Role: domain.RoleUser})
	svc := NewUserService(repo, zerolog.Nop())

	if err := svc.DeleteUser(context.Background(), ports.DeleteUserInput{ID: victim.ID, ActorID: admin.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), victim.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
}
