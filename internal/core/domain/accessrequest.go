package domain

import "time"

// RequestStatus represents the lifecycle state of an access request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDenied   RequestStatus = "denied"
)

// validTransitions defines the allowed state machine transitions. Approved
// and denied are terminal: no transition leaves them.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusApproved, StatusDenied},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AccessRequest is a user-initiated, admin-adjudicated request to join a
// Group. UserID and GroupID must resolve when the request is created and are
// not revalidated afterwards. ProcessedAt and ProcessedBy are set only on the
// transition out of pending.
type AccessRequest struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	GroupID     string        `json:"group_id"`
	Status      RequestStatus `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	RequestedAt time.Time     `json:"requested_at"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	ProcessedBy string        `json:"processed_by,omitempty"`
}
