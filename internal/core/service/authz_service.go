package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gatewise/iam-system/internal/api/metrics"
	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// AuthzService is the permission resolution engine. Each decision reads one
// consistent resolution view (the user plus every policy reachable through
// its groups) and matches against it, so a concurrent writer can never split
// the walk across two store states.
type AuthzService struct {
	resolver ports.AuthzRepository
	log      zerolog.Logger
}

func NewAuthzService(resolver ports.AuthzRepository, log zerolog.Logger) *AuthzService {
	return &AuthzService{resolver: resolver, log: log}
}

// Authorize reports whether the user identified by userID holds the required
// permission. The admin role allows unconditionally, before any policy
// lookup. Everything else is an exact-string match against the permissions
// of the policies reachable through the user's groups: no wildcards, no case
// folding, no resource hierarchy. A user in zero groups, or whose groups
// link zero policies, is denied.
func (s *AuthzService) Authorize(ctx context.Context, userID string, required domain.Permission) (bool, error) {
	view, err := s.resolver.GetResolutionView(ctx, userID)
	if err != nil {
		// Unresolvable identity is an authentication failure, not a deny.
		return false, err
	}

	if view.User.Role == domain.RoleAdmin {
		metrics.AuthzDecisionsTotal.WithLabelValues("allow", required.Resource).Inc()
		return true, nil
	}

	allowed := false
	for _, policy := range view.Policies {
		if policy.Allows(required.Resource, required.Action) {
			allowed = true
			break
		}
	}

	result := "deny"
	if allowed {
		result = "allow"
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(result, required.Resource).Inc()
	s.log.Debug().
		Str("user_id", userID).
		Str("resource", required.Resource).
		Str("action", required.Action).
		Str("result", result).
		Msg("authorization decision")
	return allowed, nil
}
