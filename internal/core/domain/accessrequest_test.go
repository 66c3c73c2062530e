package domain

import "testing"

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to RequestStatus
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDenied, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusDenied, false},
		{StatusApproved, StatusPending, false},
		{StatusDenied, StatusApproved, false},
		{StatusDenied, StatusPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
