// Package memory stores sessions and settings in memory for local
// development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Boromir-Stark/My-Workout-App/internal/domain"
)

// Repository implements the domain repositories with mutex-guarded maps.
type Repository struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Session
	settings map[string]domain.Settings
}

// NewRepository constructs an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		sessions: make(map[string][]domain.Session),
		settings: make(map[string]domain.Settings),
	}
}

// ListByUser implements domain.SessionRepository.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slice := r.sessions[userID]
	out := make([]domain.Session, len(slice))
	copy(out, slice)
	return out, nil
}

// Append implements domain.SessionRepository.
func (r *Repository) Append(ctx context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.UserID] = append(r.sessions[session.UserID], session)
	return nil
}

// Delete implements domain.SessionRepository.
func (r *Repository) Delete(ctx context.Context, userID string, date time.Time, activity domain.ActivityType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slice := r.sessions[userID]
	kept := slice[:0]
	removed := false
	for _, s := range slice {
		if s.Date.Equal(date) && s.Activity == activity {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if !removed {
		return domain.ErrSessionNotFound
	}
	r.sessions[userID] = kept
	return nil
}

// Get implements domain.SettingsRepository.
func (r *Repository) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings, ok := r.settings[userID]
	if !ok {
		return nil, nil
	}
	return &settings, nil
}

// Save implements domain.SettingsRepository.
func (r *Repository) Save(ctx context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[settings.UserID] = settings
	return nil
}

// List implements domain.SettingsRepository.
func (r *Repository) List(ctx context.Context) ([]domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Settings, 0, len(r.settings))
	for _, settings := range r.settings {
		out = append(out, settings)
	}
	return out, nil
}
