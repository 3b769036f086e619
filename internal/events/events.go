// Package events defines the payloads published for downstream consumers.
package events

import "time"

// SessionLogged is emitted when a workout session is accepted and stored.
type SessionLogged struct {
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	ActivityType   string    `json:"activity_type"`
	Date           string    `json:"date"`
	DistanceKm     float64   `json:"distance_km"`
	DurationMin    float64   `json:"duration_min"`
	VerticalGainFt float64   `json:"vertical_gain_ft"`
	CaloriesKcal   float64   `json:"calories_kcal"`
	LoggedAt       time.Time `json:"logged_at"`
}

// SessionDeleted is emitted when a user removes a logged session.
type SessionDeleted struct {
	UserID       string    `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Date         string    `json:"date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
