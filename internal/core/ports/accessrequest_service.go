package ports

import (
	"context"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// CreateAccessRequestInput carries all data needed to open a request.
type CreateAccessRequestInput struct {
	UserID  string
	GroupID string
	Reason  string
}

// GetAccessRequestInput identifies a request plus the authenticated actor,
// used to scope visibility: non-admins only see their own requests.
type GetAccessRequestInput struct {
	ID        string
	ActorID   string
	ActorRole domain.Role
}

// ListAccessRequestsInput carries parameters for the list operation.
// Admins see every request; everyone else sees only their own.
type ListAccessRequestsInput struct {
	ActorID   string
	ActorRole domain.Role
	Status    domain.RequestStatus // optional: filter by status
}

// ProcessAccessRequestInput identifies the request and the processing admin.
type ProcessAccessRequestInput struct {
	ID          string
	ProcessorID string
}

// AccessRequestService defines use-case operations for access requests.
type AccessRequestService interface {
	CreateRequest(ctx context.Context, input CreateAccessRequestInput) (*domain.AccessRequest, error)
	GetRequest(ctx context.Context, input GetAccessRequestInput) (*domain.AccessRequest, error)
	ListRequests(ctx context.Context, input ListAccessRequestsInput) ([]*domain.AccessRequest, error)
	// Approve moves a pending request to approved and then adds the request's
	// group to the requester's group set (idempotent add).
	Approve(ctx context.Context, input ProcessAccessRequestInput) (*domain.AccessRequest, error)
	// Deny moves a pending request to denied. No group mutation.
	Deny(ctx context.Context, input ProcessAccessRequestInput) (*domain.AccessRequest, error)
}
