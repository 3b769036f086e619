// Package domain defines the business logic for the workout service.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation marks input that must be rejected before persistence.
var ErrValidation = errors.New("validation failed")

// ErrSessionNotFound is returned when a session cannot be located.
var ErrSessionNotFound = errors.New("session not found")

// ActivityType enumerates the activities a session can record.
type ActivityType string

const (
	ActivityWalk           ActivityType = "Walk"
	ActivityRollerblade    ActivityType = "Rollerblade"
	ActivityStationaryBike ActivityType = "StationaryBike"
	ActivityBasketball21   ActivityType = "Basketball21"
	ActivitySpikeball      ActivityType = "Spikeball"
	ActivitySoccer         ActivityType = "Soccer"
)

// ParseActivityType validates a raw activity string.
func ParseActivityType(raw string) (ActivityType, error) {
	switch ActivityType(raw) {
	case ActivityWalk, ActivityRollerblade, ActivityStationaryBike,
		ActivityBasketball21, ActivitySpikeball, ActivitySoccer:
		return ActivityType(raw), nil
	}
	return "", fmt.Errorf("%w: unknown activity_type %q", ErrValidation, raw)
}

// Intensity grades effort for activities without a distance signal.
type Intensity string

const (
	IntensityLow      Intensity = "Low"
	IntensityModerate Intensity = "Moderate"
	IntensityHigh     Intensity = "High"
)

// ParseIntensity validates a raw intensity string. Empty input is allowed
// and means "not provided"; the energy estimator decides whether that is
// acceptable for the activity.
func ParseIntensity(raw string) (Intensity, error) {
	if raw == "" {
		return "", nil
	}
	switch Intensity(raw) {
	case IntensityLow, IntensityModerate, IntensityHigh:
		return Intensity(raw), nil
	}
	return "", fmt.Errorf("%w: unknown intensity %q", ErrValidation, raw)
}

// Session is one logged activity instance. Calories are always derived by
// the energy estimator, never supplied by the user, and sessions are
// immutable once created (delete and re-log to correct a mistake).
type Session struct {
	ID             string
	UserID         string
	Date           time.Time // civil date at UTC midnight, no time-of-day
	Activity       ActivityType
	Intensity      Intensity // empty unless the activity is intensity-gated
	BodyMassLb     float64
	DurationMin    float64
	DistanceKm     float64
	VerticalGainFt float64
	CaloriesKcal   float64
	CreatedAt      time.Time
}

// DateOnly truncates a timestamp to its UTC civil date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate enforces the session invariants against the supplied "now".
func (s Session) Validate(now time.Time) error {
	if s.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if _, err := ParseActivityType(string(s.Activity)); err != nil {
		return err
	}
	if s.Date.After(DateOnly(now)) {
		return fmt.Errorf("%w: date must not be in the future", ErrValidation)
	}
	if s.BodyMassLb <= 0 {
		return fmt.Errorf("%w: body_mass_lb must be > 0", ErrValidation)
	}
	if s.DurationMin <= 0 {
		return fmt.Errorf("%w: duration_min must be > 0", ErrValidation)
	}
	if s.DistanceKm < 0 {
		return fmt.Errorf("%w: distance_km must be >= 0", ErrValidation)
	}
	if s.VerticalGainFt < 0 {
		return fmt.Errorf("%w: vertical_gain_ft must be >= 0", ErrValidation)
	}
	return nil
}
