package file

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gatewise/iam-system/internal/api/metrics"
	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// AccessRequestRepository implements ports.AccessRequestRepository on the
// snapshot store.
type AccessRequestRepository struct {
	store *Store
}

func NewAccessRequestRepository(store *Store) *AccessRequestRepository {
	return &AccessRequestRepository{store: store}
}

// Create opens a request after checking, atomically with the write, that the
// requester and target group exist, the requester is not already a member,
// and no pending request for the pair is open.
func (r *AccessRequestRepository) Create(_ context.Context, req *domain.AccessRequest) (*domain.AccessRequest, error) {
	created := cloneRequest(req)
	err := r.store.mutate(func() error {
		user, ok := r.store.users[created.UserID]
		if !ok {
			return domain.NewDanglingRefError("user_id", []string{created.UserID})
		}
		if _, ok := r.store.groups[created.GroupID]; !ok {
			return domain.NewDanglingRefError("group_id", []string{created.GroupID})
		}
		if user.InGroup(created.GroupID) {
			return domain.ErrAlreadyMember
		}
		if r.store.pendingRequestExistsLocked(created.UserID, created.GroupID) {
			return domain.ErrPendingRequestExists
		}
		r.store.requests[created.ID] = cloneRequest(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("access_request", "create").Inc()
	return created, nil
}

func (r *AccessRequestRepository) GetByID(_ context.Context, id string) (*domain.AccessRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *AccessRequestRepository) List(_ context.Context, filter ports.ListRequestsFilter) ([]*domain.AccessRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	requests := make([]*domain.AccessRequest, 0, len(r.store.requests))
	for _, req := range r.store.requests {
		if filter.UserID != "" && req.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		requests = append(requests, cloneRequest(req))
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].RequestedAt.Equal(requests[j].RequestedAt) {
			return requests[i].ID < requests[j].ID
		}
		return requests[i].RequestedAt.Before(requests[j].RequestedAt)
	})
	return requests, nil
}

// Transition moves a pending request to a terminal status. The status check
// happens under the write lock, so two racing approvals cannot both succeed.
func (r *AccessRequestRepository) Transition(_ context.Context, id string, to domain.RequestStatus, processedBy string) (*domain.AccessRequest, error) {
	var processed *domain.AccessRequest
	err := r.store.mutate(func() error {
		req, ok := r.store.requests[id]
		if !ok {
			return domain.ErrRequestNotFound
		}
		if !req.Status.CanTransitionTo(to) {
			return fmt.Errorf("%w (status %s)", domain.ErrInvalidTransition, req.Status)
		}
		now := time.Now().UTC()
		req.Status = to
		req.ProcessedAt = &now
		req.ProcessedBy = processedBy
		processed = cloneRequest(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("access_request", "update").Inc()
	return processed, nil
}
