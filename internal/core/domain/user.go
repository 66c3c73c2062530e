package domain

import "time"

// Role is the coarse per-user tier. Only admin carries special meaning for
// authorization: it bypasses the group/policy walk entirely.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleMaintainer Role = "maintainer"
	RoleUser       Role = "user"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleMaintainer, RoleUser:
		return true
	}
	return false
}

// User models an account in the system. Groups is a set of Group ids; every
// id must reference an existing Group at the time it is written (deleting a
// Group prunes its id from all users).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Groups       []string  `json:"groups"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InGroup reports whether the user is a member of the given group.
func (u *User) InGroup(groupID string) bool {
	for _, id := range u.Groups {
		if id == groupID {
			return true
		}
	}
	return false
}

// UserPatch is a partial update: nil fields are left untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	FirstName    *string
	LastName     *string
	PasswordHash *string
	Role         *Role
	Groups       *[]string
}

// Apply returns a copy of u with the patch applied and UpdatedAt set to now.
// It never mutates u.
func (p UserPatch) Apply(u User, now time.Time) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Groups != nil {
		u.Groups = DedupeIDs(*p.Groups)
	}
	u.UpdatedAt = now
	return u
}

// DedupeIDs removes duplicate ids preserving first-seen order.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
