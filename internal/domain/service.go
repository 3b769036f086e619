package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRepository captures session persistence. A ListByUser following an
// Append for the same user must observe the new record.
type SessionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Session, error)
	Append(ctx context.Context, session Session) error
	Delete(ctx context.Context, userID string, date time.Time, activity ActivityType) error
}

// SettingsRepository captures per-user settings persistence. Get returns nil
// when no record exists; Save replaces the record wholesale.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*Settings, error)
	Save(ctx context.Context, settings Settings) error
	List(ctx context.Context) ([]Settings, error)
}

// Service orchestrates workout logging and progress workflows.
type Service struct {
	sessions SessionRepository
	settings SettingsRepository
	mode     CalorieMode
	now      func() time.Time
}

// NewService constructs a Service using the given calorie mode.
func NewService(sessions SessionRepository, settings SettingsRepository, mode CalorieMode) *Service {
	return &Service{
		sessions: sessions,
		settings: settings,
		mode:     mode,
		now:      time.Now,
	}
}

// LogSessionInput captures the payload from the API layer. Distance arrives
// in whatever unit the user entered and is normalized to km at this boundary.
type LogSessionInput struct {
	UserID         string
	Date           time.Time
	Activity       ActivityType
	Intensity      Intensity
	BodyMassLb     float64
	DurationMin    float64
	Distance       float64
	DistanceUnit   DistanceUnit
	VerticalGainFt float64
}

// DistanceUnit names the unit a distance was entered in.
type DistanceUnit string

const (
	UnitKm    DistanceUnit = "km"
	UnitMiles DistanceUnit = "miles"
)

// LogSession validates the input, derives calories and persists the session.
// Nothing is persisted when validation or estimation fails.
func (s *Service) LogSession(ctx context.Context, input LogSessionInput) (*Session, error) {
	distanceKm := input.Distance
	switch input.DistanceUnit {
	case UnitMiles:
		distanceKm = MilesToKm(input.Distance)
	case UnitKm, "":
	default:
		return nil, fmt.Errorf("%w: unknown distance_unit %q", ErrValidation, input.DistanceUnit)
	}

	now := s.now().UTC()
	session := Session{
		ID:             uuid.NewString(),
		UserID:         input.UserID,
		Date:           DateOnly(input.Date),
		Activity:       input.Activity,
		Intensity:      input.Intensity,
		BodyMassLb:     input.BodyMassLb,
		DurationMin:    input.DurationMin,
		DistanceKm:     distanceKm,
		VerticalGainFt: input.VerticalGainFt,
		CreatedAt:      now,
	}
	if err := session.Validate(now); err != nil {
		return nil, err
	}

	settings, err := s.ensureSettings(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	calories, err := EstimateCalories(s.mode, EnergyInput{
		Activity:       session.Activity,
		Intensity:      session.Intensity,
		BodyMassLb:     session.BodyMassLb,
		DurationMin:    session.DurationMin,
		VerticalGainFt: session.VerticalGainFt,
		Gender:         settings.Gender,
	})
	if err != nil {
		return nil, err
	}
	session.CaloriesKcal = calories

	if err := s.sessions.Append(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes the session logged for the given date and activity.
func (s *Service) DeleteSession(ctx context.Context, userID string, date time.Time, activity ActivityType) error {
	return s.sessions.Delete(ctx, userID, DateOnly(date), activity)
}

// ListSessions returns every stored session for the user.
func (s *Service) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// ProgressDeltas holds the month-over-month comparisons for each metric.
type ProgressDeltas struct {
	DistanceKm   Comparison
	DurationMin  Comparison
	CaloriesKcal Comparison
	VerticalFt   Comparison
	AvgSpeedKmh  Comparison
	ActiveDays   Comparison
	SessionCount Comparison
}

// Progress is the full payload behind the progress view.
type Progress struct {
	Current         MonthlySummary
	Previous        MonthlySummary
	Deltas          ProgressDeltas
	GoalKm          float64
	GoalPercent     float64
	CurrentWeightLb float64
	HasWeight       bool
	BMI             BMIResult
	TargetWeightLb  float64
	Week            WeekSummary
	WeeklyGoal      int
}

// MonthlyProgress recomputes the aggregated progress for one user and month:
// current and prior month totals, their deltas, goal completion and the
// BMI-derived targets.
func (s *Service) MonthlyProgress(ctx context.Context, userID string, year int, month time.Month) (*Progress, error) {
	settings, err := s.ensureSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := AggregateMonth(sessions, year, month)
	prevStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	previous := AggregateMonth(sessions, prevStart.Year(), prevStart.Month())

	progress := Progress{
		Current:  current,
		Previous: previous,
		Deltas: ProgressDeltas{
			DistanceKm:   Compare(current.TotalDistanceKm, previous.TotalDistanceKm),
			DurationMin:  Compare(current.TotalDurationMin, previous.TotalDurationMin),
			CaloriesKcal: Compare(current.TotalCaloriesKcal, previous.TotalCaloriesKcal),
			VerticalFt:   Compare(current.TotalVerticalFt, previous.TotalVerticalFt),
			AvgSpeedKmh:  Compare(current.AvgSpeedKmh, previous.AvgSpeedKmh),
			ActiveDays:   Compare(float64(current.ActiveDays), float64(previous.ActiveDays)),
			SessionCount: Compare(float64(current.SessionCount), float64(previous.SessionCount)),
		},
		GoalKm:         settings.MonthlyDistanceGoalKm,
		GoalPercent:    GoalPercent(current.TotalDistanceKm, settings.MonthlyDistanceGoalKm),
		TargetWeightLb: TargetWeightLb(settings.HeightCm),
		Week:           AggregateWeek(sessions, s.now()),
		WeeklyGoal:     settings.WeeklySessionGoal,
	}

	if weight, ok := LatestBodyMassLb(sessions); ok {
		progress.CurrentWeightLb = weight
		progress.HasWeight = true
		progress.BMI = BMI(weight, settings.HeightCm)
	}
	return &progress, nil
}

// ActivityComparison returns per-activity efficiency totals for one month.
func (s *Service) ActivityComparison(ctx context.Context, userID string, year int, month time.Month) ([]ActivityTotals, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BreakdownByActivity(sessions, year, month), nil
}

// MonthCalendar builds the structured month grid for the calendar view.
func (s *Service) MonthCalendar(ctx context.Context, userID string, year int, month time.Month) ([][]DayCell, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return MonthGrid(sessions, year, month, s.now()), nil
}

// GetSettings loads the user's settings, creating and persisting the default
// record on first reference.
func (s *Service) GetSettings(ctx context.Context, userID string) (*Settings, error) {
	return s.ensureSettings(ctx, userID)
}

// UpdateSettings validates and replaces the user's settings record.
func (s *Service) UpdateSettings(ctx context.Context, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.settings.Save(ctx, settings)
}

// ListUsers returns every known settings record, for the user picker.
func (s *Service) ListUsers(ctx context.Context) ([]Settings, error) {
	return s.settings.List(ctx)
}

// CreateUser provisions a fresh user id with default settings.
func (s *Service) CreateUser(ctx context.Context) (*Settings, error) {
	id := uuid.New()
	settings := DefaultSettings(fmt.Sprintf("user_%x", id[:3]))
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Service) ensureSettings(ctx context.Context, userID string) (*Settings, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	existing, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	defaults := DefaultSettings(userID)
	if err := s.settings.Save(ctx, defaults); err != nil {
		return nil, err
	}
	return &defaults, nil
}
