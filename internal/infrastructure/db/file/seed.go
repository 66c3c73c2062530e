package file

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// Default admin credentials for a fresh store. Change the password after the
// first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@localhost"
	DefaultAdminPassword = "changeme"
)

// seedLocked populates a store whose users table is empty with the default
// entities: an admin user, the Admin/User policies, and the
// Administrators/Users groups, with the admin user placed into
// Administrators. Callers guard on len(s.users) == 0, so this runs at most
// once over the life of a snapshot.
func (s *Store) seedLocked() error {
	now := time.Now().UTC()

	adminPolicy := &domain.Policy{
		ID:          uuid.NewString(),
		Name:        "Admin Policy",
		Permissions: domain.AllPermissions(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	userPolicy := &domain.Policy{
		ID:   uuid.NewString(),
		Name: "User Policy",
		Permissions: []domain.Permission{
			{Resource: domain.ResourceUsers, Action: domain.ActionRead},
			{Resource: domain.ResourceGroups, Action: domain.ActionRead},
			{Resource: domain.ResourceAccessRequests, Action: domain.ActionCreate},
			{Resource: domain.ResourceAccessRequests, Action: domain.ActionRead},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.policies[adminPolicy.ID] = adminPolicy
	s.policies[userPolicy.ID] = userPolicy

	adminsGroup := &domain.Group{
		ID:        uuid.NewString(),
		Name:      "Administrators",
		Policies:  []string{adminPolicy.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	usersGroup := &domain.Group{
		ID:        uuid.NewString(),
		Name:      "Users",
		Policies:  []string{userPolicy.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.groups[adminsGroup.ID] = adminsGroup
	s.groups[usersGroup.ID] = usersGroup

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}
	admin := &domain.User{
		ID:           uuid.NewString(),
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Groups:       []string{adminsGroup.ID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[admin.ID] = admin

	s.log.Warn().
		Str("username", DefaultAdminUsername).
		Msg("default admin account created with the default password")
	return nil
}
