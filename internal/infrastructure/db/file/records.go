package file

import (
	"time"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// snapshot is the on-disk layout: four independently named collections in a
// single document. Record order inside each collection is irrelevant to
// semantics; the store writes them sorted by id for stable diffs.
type snapshot struct {
	Users          []userRecord          `json:"users"`
	Groups         []groupRecord         `json:"groups"`
	Policies       []policyRecord        `json:"policies"`
	AccessRequests []accessRequestRecord `json:"accessRequests"`
}

// The record types exist because the domain structs hide PasswordHash from
// API serialization (`json:"-"`), while the snapshot must keep it.

type userRecord struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	Groups       []string  `json:"groups"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Groups:       append([]string{}, u.Groups...),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		Groups:       append([]string{}, r.Groups...),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type groupRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Policies  []string  `json:"policies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newGroupRecord(g *domain.Group) groupRecord {
	return groupRecord{
		ID:        g.ID,
		Name:      g.Name,
		Policies:  append([]string{}, g.Policies...),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (r groupRecord) toDomain() *domain.Group {
	return &domain.Group{
		ID:        r.ID,
		Name:      r.Name,
		Policies:  append([]string{}, r.Policies...),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type permissionRecord struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type policyRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Permissions []permissionRecord `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func newPolicyRecord(p *domain.Policy) policyRecord {
	perms := make([]permissionRecord, 0, len(p.Permissions))
	for _, perm := range p.Permissions {
		perms = append(perms, permissionRecord{Resource: perm.Resource, Action: perm.Action})
	}
	return policyRecord{
		ID:          p.ID,
		Name:        p.Name,
		Permissions: perms,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r policyRecord) toDomain() *domain.Policy {
	perms := make([]domain.Permission, 0, len(r.Permissions))
	for _, perm := range r.Permissions {
		perms = append(perms, domain.Permission{Resource: perm.Resource, Action: perm.Action})
	}
	return &domain.Policy{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type accessRequestRecord struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GroupID     string     `json:"group_id"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy string     `json:"processed_by,omitempty"`
}

func newAccessRequestRecord(a *domain.AccessRequest) accessRequestRecord {
	rec := accessRequestRecord{
		ID:          a.ID,
		UserID:      a.UserID,
		GroupID:     a.GroupID,
		Status:      string(a.Status),
		Reason:      a.Reason,
		RequestedAt: a.RequestedAt,
		ProcessedBy: a.ProcessedBy,
	}
	if a.ProcessedAt != nil {
		t := *a.ProcessedAt
		rec.ProcessedAt = &t
	}
	return rec
}

func (r accessRequestRecord) toDomain() *domain.AccessRequest {
	req := &domain.AccessRequest{
		ID:          r.ID,
		UserID:      r.UserID,
		GroupID:     r.GroupID,
		Status:      domain.RequestStatus(r.Status),
		Reason:      r.Reason,
		RequestedAt: r.RequestedAt,
		ProcessedBy: r.ProcessedBy,
	}
	if r.ProcessedAt != nil {
		t := *r.ProcessedAt
		req.ProcessedAt = &t
	}
	return req
}

// Clone helpers. The store hands out copies so callers can never mutate
// table state behind the lock.

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Groups = append([]string{}, u.Groups...)
	return &clone
}

func cloneGroup(g *domain.Group) *domain.Group {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Policies = append([]string{}, g.Policies...)
	return &clone
}

func clonePolicy(p *domain.Policy) *domain.Policy {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Permissions = append([]domain.Permission{}, p.Permissions...)
	return &clone
}

func cloneRequest(a *domain.AccessRequest) *domain.AccessRequest {
	if a == nil {
		return nil
	}
	clone := *a
	if a.ProcessedAt != nil {
		t := *a.ProcessedAt
		clone.ProcessedAt = &t
	}
	return &clone
}
