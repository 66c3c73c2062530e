package file

import (
	"sort"
	"strings"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// Uniqueness and reference checks. All helpers require the store lock and are
// called inside the same critical section as the write they guard, so a
// racing create/rename cannot slip between check and act.
//
// Username comparison is case-sensitive; email, group name, and policy name
// are case-insensitive.

func (s *Store) usernameTakenLocked(username, excludeID string) bool {
	for id, u := range s.users {
		if id != excludeID && u.Username == username {
			return true
		}
	}
	return false
}

func (s *Store) emailTakenLocked(email, excludeID string) bool {
	for id, u := range s.users {
		if id != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s *Store) groupNameTakenLocked(name, excludeID string) bool {
	for id, g := range s.groups {
		if id != excludeID && strings.EqualFold(g.Name, name) {
			return true
		}
	}
	return false
}

func (s *Store) policyNameTakenLocked(name, excludeID string) bool {
	for id, p := range s.policies {
		if id != excludeID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// missingGroupIDsLocked returns, sorted, every id that does not resolve to a
// group. An empty result means the whole reference list is valid.
func (s *Store) missingGroupIDsLocked(ids []string) []string {
	var missing []string
	for _, id := range domain.DedupeIDs(ids) {
		if _, ok := s.groups[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

// missingPolicyIDsLocked returns, sorted, every id that does not resolve to a
// policy.
func (s *Store) missingPolicyIDsLocked(ids []string) []string {
	var missing []string
	for _, id := range domain.DedupeIDs(ids) {
		if _, ok := s.policies[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

// pendingRequestExistsLocked reports whether a pending request for the
// (user, group) pair is already open. Terminal requests do not count: a user
// may re-request after an earlier request was approved or denied.
func (s *Store) pendingRequestExistsLocked(userID, groupID string) bool {
	for _, r := range s.requests {
		if r.UserID == userID && r.GroupID == groupID && r.Status == domain.StatusPending {
			return true
		}
	}
	return false
}
