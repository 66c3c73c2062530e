package domain

import "testing"

func TestPolicy_Allows(t *testing.T) {
	p := Policy{
		Permissions: []Permission{
			{Resource: ResourceUsers, Action: ActionRead},
			{Resource: ResourceGroups, Action: ActionUpdate},
		},
	}

	tests := []struct {
		resource, action string
		want             bool
	}{
		{ResourceUsers, ActionRead, true},
		{ResourceGroups, ActionUpdate, true},
		{ResourceUsers, ActionDelete, false},
		{ResourcePolicies, ActionRead, false},
		// Matching is exact: no case folding, no wildcards.
		{"Users", ActionRead, false},
		{ResourceUsers, "READ", false},
		{"users*", ActionRead, false},
	}
	for _, tt := range tests {
		if got := p.Allows(tt.resource, tt.action); got != tt.want {
			t.Errorf("Allows(%q, %q) = %v, want %v", tt.resource, tt.action, got, tt.want)
		}
	}
}

func TestAllPermissions(t *testing.T) {
	perms := AllPermissions()
	if len(perms) != 16 {
		t.Fatalf("expected the full 4x4 grid, got %d entries", len(perms))
	}
	seen := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		if _, dup := seen[p]; dup {
			t.Fatalf("duplicate permission %+v", p)
		}
		seen[p] = struct{}{}
	}
	if _, ok := seen[Permission{Resource: ResourceAccessRequests, Action: ActionDelete}]; !ok {
		t.Fatalf("grid missing access-requests/delete")
	}
}
