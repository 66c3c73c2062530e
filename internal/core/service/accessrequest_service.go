package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gatewise/iam-system/internal/api/metrics"
	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// AccessRequestService implements the request workflow: pending requests are
// opened by users and adjudicated by admins; approval grants membership in
// the target group.
type AccessRequestService struct {
	requests ports.AccessRequestRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewAccessRequestService(requests ports.AccessRequestRepository, users ports.UserRepository, logger zerolog.Logger) *AccessRequestService {
	return &AccessRequestService{requests: requests, users: users, logger: logger}
}

func (s *AccessRequestService) CreateRequest(ctx context.Context, input ports.CreateAccessRequestInput) (*domain.AccessRequest, error) {
	if input.UserID == "" {
		return nil, domain.NewFieldError("user_id", "required")
	}
	if input.GroupID == "" {
		return nil, domain.NewFieldError("group_id", "required")
	}

	req := &domain.AccessRequest{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		GroupID:     input.GroupID,
		Status:      domain.StatusPending,
		Reason:      input.Reason,
		RequestedAt: time.Now().UTC(),
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", created.ID).
		Str("user_id", created.UserID).
		Str("group_id", created.GroupID).
		Msg("access request opened")
	return created, nil
}

// GetRequest returns a request, restricted for non-admins to their own.
func (s *AccessRequestService) GetRequest(ctx context.Context, input ports.GetAccessRequestInput) (*domain.AccessRequest, error) {
	req, err := s.requests.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.ActorRole != domain.RoleAdmin && req.UserID != input.ActorID {
		// Hide the existence of other users' requests.
		return nil, domain.ErrRequestNotFound
	}
	return req, nil
}

// ListRequests returns all requests for admins and only the actor's own for
// everyone else.
func (s *AccessRequestService) ListRequests(ctx context.Context, input ports.ListAccessRequestsInput) ([]*domain.AccessRequest, error) {
	filter := ports.ListRequestsFilter{Status: input.Status}
	if input.ActorRole != domain.RoleAdmin {
		filter.UserID = input.ActorID
	}
	return s.requests.List(ctx, filter)
}

// Approve transitions the request to approved and then adds the request's
// group to the requester's group set. The membership grant runs only after
// the request's own transition succeeded, and is idempotent.
func (s *AccessRequestService) Approve(ctx context.Context, input ports.ProcessAccessRequestInput) (*domain.AccessRequest, error) {
	req, err := s.requests.Transition(ctx, input.ID, domain.StatusApproved, input.ProcessorID)
	if err != nil {
		return nil, err
	}

	if err := s.users.AddToGroup(ctx, req.UserID, req.GroupID); err != nil {
		// The request is already approved; the grant failing (user or group
		// deleted since creation) must not roll that back.
		s.logger.Error().Err(err).
			Str("request_id", req.ID).
			Str("user_id", req.UserID).
			Str("group_id", req.GroupID).
			Msg("membership grant failed after approval")
	}

	metrics.RequestTransitionsTotal.WithLabelValues("approved").Inc()
	s.logger.Info().
		Str("request_id", req.ID).
		Str("processed_by", input.ProcessorID).
		Msg("access request approved")
	return req, nil
}

// Deny transitions the request to denied. No group mutation.
func (s *AccessRequestService) Deny(ctx context.Context, input ports.ProcessAccessRequestInput) (*domain.AccessRequest, error) {
	req, err := s.requests.Transition(ctx, input.ID, domain.StatusDenied, input.ProcessorID)
	if err != nil {
		return nil, err
	}

	metrics.RequestTransitionsTotal.WithLabelValues("denied").Inc()
	s.logger.Info().
		Str("request_id", req.ID).
		Str("processed_by", input.ProcessorID).
		Msg("access request denied")
	return req, nil
}
