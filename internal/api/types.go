package api

import (
	"errors"
	"strings"
	"time"

	"github.com/Boromir-Stark/My-Workout-App/internal/domain"
)

// LogSessionRequest is the payload for POST /v1/sessions.
type LogSessionRequest struct {
	UserID         string  `json:"user_id"`
	Date           string  `json:"date"`
	ActivityType   string  `json:"activity_type"`
	Intensity      string  `json:"intensity,omitempty"`
	BodyMassLb     float64 `json:"body_mass_lb"`
	DurationMin    float64 `json:"duration_min"`
	Distance       float64 `json:"distance"`
	DistanceUnit   string  `json:"distance_unit,omitempty"`
	VerticalGainFt float64 `json:"vertical_gain_ft,omitempty"`
}

// ToInput validates the request shape and converts it to the domain input.
// Numeric range checks and the future-date rule stay with the domain layer.
func (r LogSessionRequest) ToInput() (domain.LogSessionInput, error) {
	if strings.TrimSpace(r.UserID) == "" {
		return domain.LogSessionInput{}, errors.New("user_id is required")
	}
	if strings.TrimSpace(r.ActivityType) == "" {
		return domain.LogSessionInput{}, errors.New("activity_type is required")
	}

	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return domain.LogSessionInput{}, errors.New("date must be YYYY-MM-DD")
	}
	activity, err := domain.ParseActivityType(r.ActivityType)
	if err != nil {
		return domain.LogSessionInput{}, err
	}
	intensity, err := domain.ParseIntensity(r.Intensity)
	if err != nil {
		return domain.LogSessionInput{}, err
	}

	return domain.LogSessionInput{
		UserID:         r.UserID,
		Date:           date,
		Activity:       activity,
		Intensity:      intensity,
		BodyMassLb:     r.BodyMassLb,
		DurationMin:    r.DurationMin,
		Distance:       r.Distance,
		DistanceUnit:   domain.DistanceUnit(r.DistanceUnit),
		VerticalGainFt: r.VerticalGainFt,
	}, nil
}

// SessionView exposes one stored session.
type SessionView struct {
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	Date           string    `json:"date"`
	ActivityType   string    `json:"activity_type"`
	Intensity      string    `json:"intensity,omitempty"`
	BodyMassLb     float64   `json:"body_mass_lb"`
	DurationMin    float64   `json:"duration_min"`
	DistanceKm     float64   `json:"distance_km"`
	VerticalGainFt float64   `json:"vertical_gain_ft"`
	CaloriesKcal   float64   `json:"calories_kcal"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListSessionsResponse packages list results.
type ListSessionsResponse struct {
	Items []SessionView `json:"items"`
}

// ComparisonView reports one month-over-month delta. Valid is false when no
// prior-period baseline exists.
type ComparisonView struct {
	Valid     bool    `json:"valid"`
	Delta     float64 `json:"delta"`
	DeltaPct  float64 `json:"delta_pct"`
	Direction string  `json:"direction,omitempty"`
}

// MonthlySummaryView mirrors domain.MonthlySummary for the wire.
type MonthlySummaryView struct {
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	TotalDurationMin  float64 `json:"total_duration_min"`
	TotalCaloriesKcal float64 `json:"total_calories_kcal"`
	TotalVerticalFt   float64 `json:"total_vertical_ft"`
	ActiveDays        int     `json:"active_days"`
	SessionCount      int     `json:"session_count"`
	AvgSpeedKmh       float64 `json:"avg_speed_kmh"`
}

// ProgressResponse is the payload for GET /v1/progress.
type ProgressResponse struct {
	Current         MonthlySummaryView        `json:"current"`
	Previous        MonthlySummaryView        `json:"previous"`
	Deltas          map[string]ComparisonView `json:"deltas"`
	GoalKm          float64                   `json:"goal_km"`
	GoalPercent     float64                   `json:"goal_percent"`
	CurrentWeightLb *float64                  `json:"current_weight_lb,omitempty"`
	BMI             *float64                  `json:"bmi,omitempty"`
	TargetWeightLb  float64                   `json:"target_weight_lb"`
	WeekStart       string                    `json:"week_start"`
	WeekActiveDays  int                       `json:"week_active_days"`
	WeeklyGoal      int                       `json:"weekly_goal"`
}

// ActivityTotalsView exposes per-activity efficiency totals.
type ActivityTotalsView struct {
	ActivityType      string  `json:"activity_type"`
	SessionCount      int     `json:"session_count"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	TotalDurationMin  float64 `json:"total_duration_min"`
	TotalCaloriesKcal float64 `json:"total_calories_kcal"`
	CaloriesPerHour   float64 `json:"calories_per_hour"`
	CaloriesPerKm     float64 `json:"calories_per_km"`
}

// ActivityComparisonResponse packages the comparison view.
type ActivityComparisonResponse struct {
	Items []ActivityTotalsView `json:"items"`
}

// DayCellView is one calendar slot; Date is empty for padding cells.
type DayCellView struct {
	Date    string `json:"date,omitempty"`
	InMonth bool   `json:"in_month"`
	Active  bool   `json:"active"`
	Today   bool   `json:"today"`
}

// CalendarResponse is the payload for GET /v1/calendar.
type CalendarResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Weeks [][]DayCellView `json:"weeks"`
}

// SettingsRequest is the payload for PUT /v1/settings.
type SettingsRequest struct {
	UserID                string  `json:"user_id"`
	DisplayName           string  `json:"display_name"`
	HeightCm              float64 `json:"height_cm"`
	BirthYear             int     `json:"birth_year"`
	Gender                string  `json:"gender"`
	MonthlyDistanceGoalKm float64 `json:"monthly_distance_goal_km"`
	WeeklySessionGoal     int     `json:"weekly_session_goal"`
	Theme                 string  `json:"theme"`
}

// ToSettings converts the request to the domain record; the domain layer
// validates it.
func (r SettingsRequest) ToSettings() domain.Settings {
	return domain.Settings{
		UserID:                r.UserID,
		DisplayName:           r.DisplayName,
		HeightCm:              r.HeightCm,
		BirthYear:             r.BirthYear,
		Gender:                domain.Gender(r.Gender),
		MonthlyDistanceGoalKm: r.MonthlyDistanceGoalKm,
		WeeklySessionGoal:     r.WeeklySessionGoal,
		Theme:                 domain.Theme(r.Theme),
	}
}

// SettingsView exposes one settings record.
type SettingsView struct {
	UserID                string  `json:"user_id"`
	DisplayName           string  `json:"display_name"`
	HeightCm              float64 `json:"height_cm"`
	BirthYear             int     `json:"birth_year"`
	Gender                string  `json:"gender"`
	MonthlyDistanceGoalKm float64 `json:"monthly_distance_goal_km"`
	WeeklySessionGoal     int     `json:"weekly_session_goal"`
	Theme                 string  `json:"theme"`
}

// UserView is one entry in the user picker.
type UserView struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// ListUsersResponse packages the user list.
type ListUsersResponse struct {
	Items []UserView `json:"items"`
}

func toSessionView(s domain.Session) SessionView {
	return SessionView{
		SessionID:      s.ID,
		UserID:         s.UserID,
		Date:           s.Date.Format(time.DateOnly),
		ActivityType:   string(s.Activity),
		Intensity:      string(s.Intensity),
		BodyMassLb:     s.BodyMassLb,
		DurationMin:    s.DurationMin,
		DistanceKm:     s.DistanceKm,
		VerticalGainFt: s.VerticalGainFt,
		CaloriesKcal:   s.CaloriesKcal,
		CreatedAt:      s.CreatedAt,
	}
}

func toComparisonView(c domain.Comparison) ComparisonView {
	return ComparisonView{
		Valid:     c.Valid,
		Delta:     c.Delta,
		DeltaPct:  c.DeltaPct,
		Direction: string(c.Direction),
	}
}

func toSummaryView(s domain.MonthlySummary) MonthlySummaryView {
	return MonthlySummaryView{
		Year:              s.Year,
		Month:             int(s.Month),
		TotalDistanceKm:   s.TotalDistanceKm,
		TotalDurationMin:  s.TotalDurationMin,
		TotalCaloriesKcal: s.TotalCaloriesKcal,
		TotalVerticalFt:   s.TotalVerticalFt,
		ActiveDays:        s.ActiveDays,
		SessionCount:      s.SessionCount,
		AvgSpeedKmh:       s.AvgSpeedKmh,
	}
}

func toProgressView(p domain.Progress) ProgressResponse {
	resp := ProgressResponse{
		Current:  toSummaryView(p.Current),
		Previous: toSummaryView(p.Previous),
		Deltas: map[string]ComparisonView{
			"distance_km":   toComparisonView(p.Deltas.DistanceKm),
			"duration_min":  toComparisonView(p.Deltas.DurationMin),
			"calories_kcal": toComparisonView(p.Deltas.CaloriesKcal),
			"vertical_ft":   toComparisonView(p.Deltas.VerticalFt),
			"avg_speed_kmh": toComparisonView(p.Deltas.AvgSpeedKmh),
			"active_days":   toComparisonView(p.Deltas.ActiveDays),
			"session_count": toComparisonView(p.Deltas.SessionCount),
		},
		GoalKm:         p.GoalKm,
		GoalPercent:    p.GoalPercent,
		TargetWeightLb: p.TargetWeightLb,
		WeekStart:      p.Week.Start.Format(time.DateOnly),
		WeekActiveDays: p.Week.ActiveDays,
		WeeklyGoal:     p.WeeklyGoal,
	}
	if p.HasWeight {
		weight := p.CurrentWeightLb
		resp.CurrentWeightLb = &weight
	}
	if p.BMI.Valid {
		bmi := p.BMI.Value
		resp.BMI = &bmi
	}
	return resp
}

func toSettingsView(s domain.Settings) SettingsView {
	return SettingsView{
		UserID:                s.UserID,
		DisplayName:           s.DisplayName,
		HeightCm:              s.HeightCm,
		BirthYear:             s.BirthYear,
		Gender:                string(s.Gender),
		MonthlyDistanceGoalKm: s.MonthlyDistanceGoalKm,
		WeeklySessionGoal:     s.WeeklySessionGoal,
		Theme:                 string(s.Theme),
	}
}
