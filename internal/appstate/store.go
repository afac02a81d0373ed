package appstate

import (
	"context"
	"sort"
	"sync"

	"github.com/vladimiradmaev/glucotrack/internal/database"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"github.com/vladimiradmaev/glucotrack/internal/interfaces"
	"github.com/vladimiradmaev/glucotrack/internal/logger"
	"github.com/vladimiradmaev/glucotrack/internal/services"
)

// AuthState is the facade's auth state machine.
type AuthState string

const (
	StateLoading   AuthState = "loading"
	StateLoggedIn  AuthState = "loggedIn"
	StateLoggedOut AuthState = "loggedOut"
)

// Store is the single source of truth for one signed-in user: the profile
// plus ordered caches of glucose logs and weight history, kept in sync with
// the persistence layer after every mutation. Mutations hit the store first;
// the cache is only updated from the authoritative response, so a failed
// mutation never corrupts cached state.
type Store struct {
	mu sync.RWMutex

	users   interfaces.UserServiceInterface
	glucose interfaces.GlucoseServiceInterface
	weight  interfaces.WeightServiceInterface

	state   AuthState
	user    *database.User
	logs    []database.GlucoseLog
	history []database.WeightEntry
}

// NewStore creates a store in the loading state.
func NewStore(
	users interfaces.UserServiceInterface,
	glucose interfaces.GlucoseServiceInterface,
	weight interfaces.WeightServiceInterface,
) *Store {
	return &Store{
		users:   users,
		glucose: glucose,
		weight:  weight,
		state:   StateLoading,
	}
}

// State returns the current auth state.
func (s *Store) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the signed-in user, or nil.
func (s *Store) User() *database.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// GlucoseLogs returns a copy of the cached logs, most recent first.
func (s *Store) GlucoseLogs() []database.GlucoseLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]database.GlucoseLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// WeightHistory returns a copy of the cached entries, most recent first.
func (s *Store) WeightHistory() []database.WeightEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]database.WeightEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Load resolves the user and fills the caches. Any failure forces a logout:
// requiring a re-login beats showing partial data.
func (s *Store) Load(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	profile, err := s.users.GetProfile(ctx, userID)
	if err == nil && profile == nil {
		err = apperrors.ErrNotFound
	}

	var logs []database.GlucoseLog
	var history []database.WeightEntry
	if err == nil {
		logs, err = s.glucose.GetAll(ctx, userID)
	}
	if err == nil {
		history, err = s.weight.GetAll(ctx, userID)
	}

	if err != nil {
		logger.Error("Failed to load user data", "user_id", userID, "error", err)
		s.Logout()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = profile
	s.logs = logs
	s.history = history
	s.state = StateLoggedIn
	return nil
}

// Logout clears all cached state.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.logs = nil
	s.history = nil
	s.state = StateLoggedOut
}

func (s *Store) authedUserID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoggedIn || s.user == nil {
		return "", apperrors.ErrNotAuthenticated
	}
	return s.user.ID, nil
}

// UpdateProfile persists the profile changes and refreshes the cached user.
func (s *Store) UpdateProfile(ctx context.Context, update services.ProfileUpdate) (*database.User, error) {
	userID, err := s.authedUserID()
	if err != nil {
		return nil, err
	}

	profile, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.ErrNotFound
	}

	s.mu.Lock()
	s.user = profile
	s.mu.Unlock()
	return profile, nil
}

// AddGlucoseLog persists a new log and merges it into the cache, re-sorted
// most recent first.
func (s *Store) AddGlucoseLog(ctx context.Context, in services.GlucoseLogInput) (*database.GlucoseLog, error) {
	userID, err := s.authedUserID()
	if err != nil {
		return nil, err
	}

	log, err := s.glucose.Add(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.logs = append(s.logs, *log)
	sortLogsDesc(s.logs)
	s.mu.Unlock()
	return log, nil
}

// UpdateGlucoseLog persists the change and replaces the cached row.
func (s *Store) UpdateGlucoseLog(ctx context.Context, log database.GlucoseLog) (*database.GlucoseLog, error) {
	userID, err := s.authedUserID()
	if err != nil {
		return nil, err
	}
	log.UserID = userID

	updated, err := s.glucose.Update(ctx, &log)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.logs {
		if s.logs[i].ID == updated.ID {
			s.logs[i] = *updated
			break
		}
	}
	sortLogsDesc(s.logs)
	s.mu.Unlock()
	return updated, nil
}

// DeleteGlucoseLog removes the log from storage and from the cache.
func (s *Store) DeleteGlucoseLog(ctx context.Context, id string) error {
	return s.DeleteGlucoseLogs(ctx, []string{id})
}

// DeleteGlucoseLogs removes a set of logs. An empty set mutates nothing.
func (s *Store) DeleteGlucoseLogs(ctx context.Context, ids []string) error {
	userID, err := s.authedUserID()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.glucose.DeleteMany(ctx, userID, ids); err != nil {
		return err
	}

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	s.mu.Lock()
	kept := s.logs[:0]
	for _, log := range s.logs {
		if !idSet[log.ID] {
			kept = append(kept, log)
		}
	}
	s.logs = kept
	s.mu.Unlock()
	return nil
}

// AddWeightEntry persists a new entry and merges it into the cache,
// re-sorted most recent first.
func (s *Store) AddWeightEntry(ctx context.Context, in services.WeightEntryInput) (*database.WeightEntry, error) {
	userID, err := s.authedUserID()
	if err != nil {
		return nil, err
	}

	entry, err := s.weight.Add(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.history = append(s.history, *entry)
	sortEntriesDesc(s.history)
	s.mu.Unlock()
	return entry, nil
}

// UpdateWeightEntry persists the change and replaces the cached row.
func (s *Store) UpdateWeightEntry(ctx context.Context, entry database.WeightEntry) (*database.WeightEntry, error) {
	userID, err := s.authedUserID()
	if err != nil {
		return nil, err
	}
	entry.UserID = userID

	updated, err := s.weight.Update(ctx, &entry)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.history {
		if s.history[i].ID == updated.ID {
			s.history[i] = *updated
			break
		}
	}
	sortEntriesDesc(s.history)
	s.mu.Unlock()
	return updated, nil
}

// DeleteWeightEntry removes the entry from storage and from the cache.
func (s *Store) DeleteWeightEntry(ctx context.Context, id string) error {
	return s.DeleteWeightEntries(ctx, []string{id})
}

// DeleteWeightEntries removes a set of entries. An empty set mutates nothing.
func (s *Store) DeleteWeightEntries(ctx context.Context, ids []string) error {
	userID, err := s.authedUserID()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.weight.DeleteMany(ctx, userID, ids); err != nil {
		return err
	}

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	s.mu.Lock()
	kept := s.history[:0]
	for _, entry := range s.history {
		if !idSet[entry.ID] {
			kept = append(kept, entry)
		}
	}
	s.history = kept
	s.mu.Unlock()
	return nil
}

func sortLogsDesc(logs []database.GlucoseLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
}

func sortEntriesDesc(entries []database.WeightEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
