package domain

import "time"

// Canonical resources and actions managed by this system. Permission matching
// is exact-string, so nothing restricts policies to these values; they exist
// for the seed data and for the route table.
const (
	ResourceUsers          = "users"
	ResourceGroups         = "groups"
	ResourcePolicies       = "policies"
	ResourceAccessRequests = "access-requests"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Permission is a single (resource, action) pair. It is an embedded value
// type, not an addressable entity.
type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Policy is a named bundle of Permissions. Duplicates are allowed and order
// carries no meaning.
type Policy struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Allows reports whether the policy contains a permission matching resource
// and action exactly. No case folding, no wildcards, no hierarchy.
func (p *Policy) Allows(resource, action string) bool {
	for _, perm := range p.Permissions {
		if perm.Resource == resource && perm.Action == action {
			return true
		}
	}
	return false
}

// PolicyPatch is a partial update: nil fields are left untouched.
type PolicyPatch struct {
	Name        *string
	Permissions *[]Permission
}

// Apply returns a copy of pl with the patch applied and UpdatedAt set to now.
func (p PolicyPatch) Apply(pl Policy, now time.Time) Policy {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Permissions != nil {
		pl.Permissions = append([]Permission(nil), *p.Permissions...)
	}
	pl.UpdatedAt = now
	return pl
}

// AllPermissions returns the full grid of canonical resources x actions.
func AllPermissions() []Permission {
	resources := []string{ResourceUsers, ResourceGroups, ResourcePolicies, ResourceAccessRequests}
	actions := []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
	perms := make([]Permission, 0, len(resources)*len(actions))
	for _, r := range resources {
		for _, a := range actions {
			perms = append(perms, Permission{Resource: r, Action: a})
		}
	}
	return perms
}
