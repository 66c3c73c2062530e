package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// ListRequestsFilter carries query parameters for listing access requests.
// UserID is enforced by the service layer: empty means no filter (admin),
// non-empty scopes the listing to that requester.
type ListRequestsFilter struct {
	UserID string
	Status domain.RequestStatus // optional: filter by status
}

// AccessRequestRepository defines persistence operations for access requests.
//
// Create enforces the creation rules atomically with the write: the target
// group must exist, the requester must exist and not already be a member,
// and no pending request for the same (user, group) pair may exist.
type AccessRequestRepository interface {
	Create(ctx context.Context, req *domain.AccessRequest) (*domain.AccessRequest, error)
	GetByID(ctx context.Context, id string) (*domain.AccessRequest, error)
	List(ctx context.Context, filter ListRequestsFilter) ([]*domain.AccessRequest, error)
	// Transition moves a pending request to a terminal status, stamping
	// ProcessedAt and ProcessedBy. A request not in pending yields
	// domain.ErrInvalidTransition; the check is atomic with the write.
	Transition(ctx context.Context, id string, to domain.RequestStatus, processedBy string) (*domain.AccessRequest, error)
}
