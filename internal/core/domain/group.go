package domain

import "time"

// Group is a named bundle of Policies. Users join groups to inherit the
// permissions of the linked policies. Policies is a set of Policy ids; every
// id must reference an existing Policy when written (deleting a Policy prunes
// its id from all groups).
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Policies  []string  `json:"policies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupPatch is a partial update: nil fields are left untouched.
type GroupPatch struct {
	Name     *string
	Policies *[]string
}

// Apply returns a copy of g with the patch applied and UpdatedAt set to now.
func (p GroupPatch) Apply(g Group, now time.Time) Group {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Policies != nil {
		g.Policies = DedupeIDs(*p.Policies)
	}
	g.UpdatedAt = now
	return g
}
