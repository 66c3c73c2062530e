package file

import (
	"context"
	"sort"
	"time"

	"github.com/gatewise/iam-system/internal/api/metrics"
	"github.com/gatewise/iam-system/internal/core/domain"
)

// UserRepository implements ports.UserRepository on the snapshot store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	created := cloneUser(user)
	err := r.store.mutate(func() error {
		if r.store.usernameTakenLocked(created.Username, "") {
			return domain.ErrUsernameTaken
		}
		if r.store.emailTakenLocked(created.Email, "") {
			return domain.ErrEmailTaken
		}
		if missing := r.store.missingGroupIDsLocked(created.Groups); len(missing) > 0 {
			return domain.NewDanglingRefError("groups", missing)
		}
		created.Groups = domain.DedupeIDs(created.Groups)
		r.store.users[created.ID] = cloneUser(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("user", "create").Inc()
	return created, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	users := make([]*domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	var updated *domain.User
	err := r.store.mutate(func() error {
		existing, ok := r.store.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		if patch.Username != nil && r.store.usernameTakenLocked(*patch.Username, id) {
			return domain.ErrUsernameTaken
		}
		if patch.Email != nil && r.store.emailTakenLocked(*patch.Email, id) {
			return domain.ErrEmailTaken
		}
		if patch.Groups != nil {
			if missing := r.store.missingGroupIDsLocked(*patch.Groups); len(missing) > 0 {
				return domain.NewDanglingRefError("groups", missing)
			}
		}
		next := patch.Apply(*cloneUser(existing), time.Now().UTC())
		r.store.users[id] = &next
		updated = cloneUser(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.EntityMutationsTotal.WithLabelValues("user", "update").Inc()
	return updated, nil
}

// Delete removes the user. Deleting a user has no cascading effect on other
// tables; open access requests keep referencing the id.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	err := r.store.mutate(func() error {
		if _, ok := r.store.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(r.store.users, id)
		return nil
	})
	if err != nil {
		return err
	}
	metrics.EntityMutationsTotal.WithLabelValues("user", "delete").Inc()
	return nil
}

func (r *UserRepository) AddToGroup(_ context.Context, userID, groupID string) error {
	return r.store.mutate(func() error {
		u, ok := r.store.users[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		if _, ok := r.store.groups[groupID]; !ok {
			return domain.ErrGroupNotFound
		}
		if u.InGroup(groupID) {
			return nil
		}
		u.Groups = append(u.Groups, groupID)
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *UserRepository) IsUsernameUnique(_ context.Context, username, excludeID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return !r.store.usernameTakenLocked(username, excludeID), nil
}

func (r *UserRepository) IsEmailUnique(_ context.Context, email, excludeID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return !r.store.emailTakenLocked(email, excludeID), nil
}
