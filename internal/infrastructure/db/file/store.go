// Package file implements the entity store as four in-memory tables flushed
// to a single JSON snapshot after every mutation. The flush writes to a temp
// file and renames it over the snapshot, so the durable copy is never torn;
// a failed flush is surfaced as a store fault and the in-memory tables are
// restored from the last good snapshot.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatewise/iam-system/internal/api/metrics"
	"github.com/gatewise/iam-system/internal/core/domain"
)

// Store owns the four entity tables. All access goes through the repositories
// in this package; mutations hold the write lock across "mutate + flush" so
// concurrent writers cannot interleave partial snapshots, and reads run
// concurrently under the read lock against a consistent state.
type Store struct {
	mu   sync.RWMutex
	path string
	log  zerolog.Logger

	users    map[string]*domain.User
	groups   map[string]*domain.Group
	policies map[string]*domain.Policy
	requests map[string]*domain.AccessRequest
}

// Open loads (or creates) the snapshot at path and returns a ready Store.
// An empty path keeps the store purely in-memory, which tests rely on.
// When the users table is empty after loading, default entities are seeded.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{
		path:     path,
		log:      log,
		users:    make(map[string]*domain.User),
		groups:   make(map[string]*domain.Group),
		policies: make(map[string]*domain.Policy),
		requests: make(map[string]*domain.AccessRequest),
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		if err := s.loadLocked(); err != nil {
			return nil, err
		}
	}

	if len(s.users) == 0 {
		if err := s.seedLocked(); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		s.log.Info().Str("path", path).Msg("store seeded with default entities")
	}

	return s, nil
}

// Close flushes the current state one last time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// Ping reports whether the snapshot location is usable. Used by the
// readiness probe.
func (s *Store) Ping() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.path == "" {
		return nil
	}
	f, err := os.OpenFile(s.path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("snapshot unreadable: %w", err)
	}
	return f.Close()
}

// mutate runs fn under the write lock and flushes the snapshot when fn
// succeeds. A failed flush restores the tables from the last durable
// snapshot before the fault is returned, so in-memory state never reports
// ahead of disk.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	if err := s.persistLocked(); err != nil {
		if reloadErr := s.loadLocked(); reloadErr != nil {
			s.log.Error().Err(reloadErr).Msg("rollback reload failed; in-memory state is ahead of disk")
		}
		return err
	}
	return nil
}

// loadLocked replaces the tables with the contents of the snapshot file.
// A missing file leaves the tables empty; a malformed file is an error.
func (s *Store) loadLocked() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}

	s.users = make(map[string]*domain.User, len(snap.Users))
	for _, rec := range snap.Users {
		u := rec.toDomain()
		s.users[u.ID] = u
	}
	s.groups = make(map[string]*domain.Group, len(snap.Groups))
	for _, rec := range snap.Groups {
		g := rec.toDomain()
		s.groups[g.ID] = g
	}
	s.policies = make(map[string]*domain.Policy, len(snap.Policies))
	for _, rec := range snap.Policies {
		p := rec.toDomain()
		s.policies[p.ID] = p
	}
	s.requests = make(map[string]*domain.AccessRequest, len(snap.AccessRequests))
	for _, rec := range snap.AccessRequests {
		r := rec.toDomain()
		s.requests[r.ID] = r
	}
	return nil
}

// persistLocked serializes all four tables and atomically replaces the
// snapshot file. No-op for in-memory stores.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	start := time.Now()
	snap := s.snapshotLocked()

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		metrics.SnapshotFlushFailures.Inc()
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWrite, err)
	}

	tmp := s.path + ".tmp"
	if err := writeAndSync(tmp, raw); err != nil {
		metrics.SnapshotFlushFailures.Inc()
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		metrics.SnapshotFlushFailures.Inc()
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWrite, err)
	}

	metrics.SnapshotFlushDuration.Observe(time.Since(start).Seconds())
	return nil
}

func writeAndSync(path string, raw []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// snapshotLocked builds the serializable view of the tables, sorted by id so
// the file is stable across flushes.
func (s *Store) snapshotLocked() snapshot {
	snap := snapshot{
		Users:          make([]userRecord, 0, len(s.users)),
		Groups:         make([]groupRecord, 0, len(s.groups)),
		Policies:       make([]policyRecord, 0, len(s.policies)),
		AccessRequests: make([]accessRequestRecord, 0, len(s.requests)),
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, newUserRecord(u))
	}
	for _, g := range s.groups {
		snap.Groups = append(snap.Groups, newGroupRecord(g))
	}
	for _, p := range s.policies {
		snap.Policies = append(snap.Policies, newPolicyRecord(p))
	}
	for _, r := range s.requests {
		snap.AccessRequests = append(snap.AccessRequests, newAccessRequestRecord(r))
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].ID < snap.Users[j].ID })
	sort.Slice(snap.Groups, func(i, j int) bool { return snap.Groups[i].ID < snap.Groups[j].ID })
	sort.Slice(snap.Policies, func(i, j int) bool { return snap.Policies[i].ID < snap.Policies[j].ID })
	sort.Slice(snap.AccessRequests, func(i, j int) bool { return snap.AccessRequests[i].ID < snap.AccessRequests[j].ID })
	return snap
}
