package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

func TestGroupService_CreateGroup(t *testing.T) {
	repo := newStubGroupRepo()
	svc := NewGroupService(repo, zerolog.Nop())

	group, err := svc.CreateGroup(context.Background(), ports.CreateGroupInput{
		Name:     "Platform",
		Policies: []string{"p-1"},
	})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if group.ID == "" {
		t.Fatalf("group must be assigned an id")
	}
	if group.CreatedAt.IsZero() || !group.CreatedAt.Equal(group.UpdatedAt) {
		t.Fatalf("fresh group must have CreatedAt == UpdatedAt, got %v / %v", group.CreatedAt, group.UpdatedAt)
	}
}

func TestGroupService_CreateGroupRequiresName(t *testing.T) {
	svc := NewGroupService(newStubGroupRepo(), zerolog.Nop())
	_, err := svc.CreateGroup(context.Background(), ports.CreateGroupInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGroupService_CreateGroupNameConflict(t *testing.T) {
	repo := newStubGroupRepo()
	repo.add(&domain.Group{ID: "g-1", Name: "Admins"})
	svc := NewGroupService(repo, zerolog.Nop())

	_, err := svc.CreateGroup(context.Background(), ports.CreateGroupInput{Name: "admins"})
	if !errors.Is(err, domain.ErrGroupNameTaken) {
		t.Fatalf("expected ErrGroupNameTaken, got %v", err)
	}
}

func TestGroupService_UpdateGroup(t *testing.T) {
	repo := newStubGroupRepo()
	repo.add(&domain.Group{ID: "g-1", Name: "Old", Policies: []string{"p-1"}, CreatedAt: time.Now().Add(-time.Hour)})
	svc := NewGroupService(repo, zerolog.Nop())

	name := "New"
	updated, err := svc.UpdateGroup(context.Background(), ports.UpdateGroupInput{ID: "g-1", Name: &name})
	if err != nil {
		t.Fatalf("UpdateGroup: %v", err)
	}
	if updated.Name != "New" {
		t.Fatalf("Name = %q, want New", updated.Name)
	}
	if len(updated.Policies) != 1 {
		t.Fatalf("policies must survive a name-only patch: %v", updated.Policies)
	}
}

func TestGroupService_UpdateGroupRejectsEmptyName(t *testing.T) {
	repo := newStubGroupRepo()
	repo.add(&domain.Group{ID: "g-1", Name: "Keep"})
	svc := NewGroupService(repo, zerolog.Nop())

	empty := ""
	_, err := svc.UpdateGroup(context.Background(), ports.UpdateGroupInput{ID: "g-1", Name: &empty})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGroupService_DeleteGroupUnknown(t *testing.T) {
	svc := NewGroupService(newStubGroupRepo(), zerolog.Nop())
	if err := svc.DeleteGroup(context.Background(), "nope"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}
