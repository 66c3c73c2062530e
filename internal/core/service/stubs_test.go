package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// In-memory stubs implementing the repository ports, shared by the service
// tests in this package.

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Groups = append([]string{}, u.Groups...)
	return &clone
}

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrEmailTaken
		}
	}
	return r.add(cloneUser(user)), nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	existing, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	next := patch.Apply(*cloneUser(existing), time.Now().UTC())
	r.users[id] = &next
	return cloneUser(&next), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) AddToGroup(_ context.Context, userID, groupID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.InGroup(groupID) {
		return nil
	}
	u.Groups = append(u.Groups, groupID)
	return nil
}

func (r *stubUserRepo) IsUsernameUnique(_ context.Context, username, excludeID string) (bool, error) {
	for id, u := range r.users {
		if id != excludeID && u.Username == username {
			return false, nil
		}
	}
	return true, nil
}

func (r *stubUserRepo) IsEmailUnique(_ context.Context, email, excludeID string) (bool, error) {
	for id, u := range r.users {
		if id != excludeID && strings.EqualFold(u.Email, email) {
			return false, nil
		}
	}
	return true, nil
}

type stubGroupRepo struct {
	groups map[string]*domain.Group
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{groups: make(map[string]*domain.Group)}
}

func (r *stubGroupRepo) add(g *domain.Group) { r.groups[g.ID] = g }

func (r *stubGroupRepo) Create(_ context.Context, group *domain.Group) (*domain.Group, error) {
	for _, g := range r.groups {
		if strings.EqualFold(g.Name, group.Name) {
			return nil, domain.ErrGroupNameTaken
		}
	}
	r.groups[group.ID] = group
	return group, nil
}

func (r *stubGroupRepo) GetByID(_ context.Context, id string) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return g, nil
}

func (r *stubGroupRepo) List(_ context.Context) ([]*domain.Group, error) {
	out := make([]*domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g)
	}
	return out, nil
}

func (r *stubGroupRepo) Update(_ context.Context, id string, patch domain.GroupPatch) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	next := patch.Apply(*g, time.Now().UTC())
	r.groups[id] = &next
	return &next, nil
}

func (r *stubGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.groups[id]; !ok {
		return domain.ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}

func (r *stubGroupRepo) IsNameUnique(_ context.Context, name, excludeID string) (bool, error) {
	for id, g := range r.groups {
		if id != excludeID && strings.EqualFold(g.Name, name) {
			return false, nil
		}
	}
	return true, nil
}

func (r *stubGroupRepo) ValidateGroupIDs(_ context.Context, ids []string) error {
	var missing []string
	for _, id := range ids {
		if _, ok := r.groups[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return domain.NewDanglingRefError("groups", missing)
	}
	return nil
}

type stubPolicyRepo struct {
	policies map[string]*domain.Policy
}

func newStubPolicyRepo() *stubPolicyRepo {
	return &stubPolicyRepo{policies: make(map[string]*domain.Policy)}
}

func (r *stubPolicyRepo) add(p *domain.Policy) { r.policies[p.ID] = p }

func (r *stubPolicyRepo) Create(_ context.Context, policy *domain.Policy) (*domain.Policy, error) {
	for _, p := range r.policies {
		if strings.EqualFold(p.Name, policy.Name) {
			return nil, domain.ErrPolicyNameTaken
		}
	}
	r.policies[policy.ID] = policy
	return policy, nil
}

func (r *stubPolicyRepo) GetByID(_ context.Context, id string) (*domain.Policy, error) {
	p, ok := r.policies[id]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}
	return p, nil
}

func (r *stubPolicyRepo) List(_ context.Context) ([]*domain.Policy, error) {
	out := make([]*domain.Policy, 0, len(r.policies))
	for _, p := range r.policies {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPolicyRepo) Update(_ context.Context, id string, patch domain.PolicyPatch) (*domain.Policy, error) {
	p, ok := r.policies[id]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}
	next := patch.Apply(*p, time.Now().UTC())
	r.policies[id] = &next
	return &next, nil
}

func (r *stubPolicyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.policies[id]; !ok {
		return domain.ErrPolicyNotFound
	}
	delete(r.policies, id)
	return nil
}

func (r *stubPolicyRepo) IsNameUnique(_ context.Context, name, excludeID string) (bool, error) {
	for id, p := range r.policies {
		if id != excludeID && strings.EqualFold(p.Name, name) {
			return false, nil
		}
	}
	return true, nil
}

func (r *stubPolicyRepo) ValidatePolicyIDs(_ context.Context, ids []string) error {
	var missing []string
	for _, id := range ids {
		if _, ok := r.policies[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return domain.NewDanglingRefError("policies", missing)
	}
	return nil
}

// stubResolutionRepo assembles the resolution view from the other stubs in a
// single call, mirroring the one-consistent-read contract of the port.
type stubResolutionRepo struct {
	users    *stubUserRepo
	groups   *stubGroupRepo
	policies *stubPolicyRepo
	calls    int
}

func newStubResolutionRepo(users *stubUserRepo, groups *stubGroupRepo, policies *stubPolicyRepo) *stubResolutionRepo {
	return &stubResolutionRepo{users: users, groups: groups, policies: policies}
}

func (r *stubResolutionRepo) GetResolutionView(_ context.Context, userID string) (*ports.ResolutionView, error) {
	r.calls++
	u, ok := r.users.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	view := &ports.ResolutionView{
		User:     cloneUser(u),
		Policies: make(map[string]*domain.Policy),
	}
	for _, gid := range u.Groups {
		g, ok := r.groups.groups[gid]
		if !ok {
			continue
		}
		for _, pid := range g.Policies {
			if p, ok := r.policies.policies[pid]; ok {
				view.Policies[pid] = p
			}
		}
	}
	return view, nil
}

type stubRequestRepo struct {
	requests map[string]*domain.AccessRequest
	users    *stubUserRepo
	groups   *stubGroupRepo
}

func newStubRequestRepo(users *stubUserRepo, groups *stubGroupRepo) *stubRequestRepo {
	return &stubRequestRepo{
		requests: make(map[string]*domain.AccessRequest),
		users:    users,
		groups:   groups,
	}
}

func (r *stubRequestRepo) Create(ctx context.Context, req *domain.AccessRequest) (*domain.AccessRequest, error) {
	user, err := r.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, domain.NewDanglingRefError("user_id", []string{req.UserID})
	}
	if _, err := r.groups.GetByID(ctx, req.GroupID); err != nil {
		return nil, domain.NewDanglingRefError("group_id", []string{req.GroupID})
	}
	if user.InGroup(req.GroupID) {
		return nil, domain.ErrAlreadyMember
	}
	for _, existing := range r.requests {
		if existing.UserID == req.UserID && existing.GroupID == req.GroupID && existing.Status == domain.StatusPending {
			return nil, domain.ErrPendingRequestExists
		}
	}
	clone := *req
	r.requests[req.ID] = &clone
	return req, nil
}

func (r *stubRequestRepo) GetByID(_ context.Context, id string) (*domain.AccessRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) List(_ context.Context, filter ports.ListRequestsFilter) ([]*domain.AccessRequest, error) {
	out := make([]*domain.AccessRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.UserID != "" && req.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		clone := *req
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRequestRepo) Transition(_ context.Context, id string, to domain.RequestStatus, processedBy string) (*domain.AccessRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	if !req.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w (status %s)", domain.ErrInvalidTransition, req.Status)
	}
	now := time.Now().UTC()
	req.Status = to
	req.ProcessedAt = &now
	req.ProcessedBy = processedBy
	clone := *req
	return &clone, nil
}
