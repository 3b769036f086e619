package domain

import "fmt"

// Gender is used only to pick the legacy MET fallback.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Theme selects the presentation colour scheme stored with the user.
type Theme string

const (
	ThemeLight Theme = "Light"
	ThemeDark  Theme = "Dark"
)

// Settings is the single per-user configuration record. It is replaced
// wholesale on save and never deleted in normal operation.
type Settings struct {
	UserID                string
	DisplayName           string
	HeightCm              float64
	BirthYear             int
	Gender                Gender
	MonthlyDistanceGoalKm float64
	WeeklySessionGoal     int
	Theme                 Theme
}

// DefaultSettings returns the record created on first reference to a new
// user id.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:                userID,
		DisplayName:           userID,
		HeightCm:              175,
		BirthYear:             1991,
		Gender:                GenderMale,
		MonthlyDistanceGoalKm: 100,
		WeeklySessionGoal:     5,
		Theme:                 ThemeDark,
	}
}

// Validate checks the settings invariants before a save.
func (s Settings) Validate() error {
	if s.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if s.HeightCm <= 0 {
		return fmt.Errorf("%w: height_cm must be > 0", ErrValidation)
	}
	if s.MonthlyDistanceGoalKm <= 0 {
		return fmt.Errorf("%w: monthly_distance_goal_km must be > 0", ErrValidation)
	}
	if s.WeeklySessionGoal < 1 {
		return fmt.Errorf("%w: weekly_session_goal must be >= 1", ErrValidation)
	}
	switch s.Gender {
	case GenderMale, GenderFemale:
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrValidation, s.Gender)
	}
	switch s.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, s.Theme)
	}
	return nil
}
