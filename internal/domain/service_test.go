package domain

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubSessionRepo struct {
	sessions []Session
	deleted  []string
}

func (r *stubSessionRepo) ListByUser(ctx context.Context, userID string) ([]Session, error) {
	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSessionRepo) Append(ctx context.Context, session Session) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *stubSessionRepo) Delete(ctx context.Context, userID string, date time.Time, activity ActivityType) error {
	for i, s := range r.sessions {
		if s.UserID == userID && s.Date.Equal(date) && s.Activity == activity {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			r.deleted = append(r.deleted, s.ID)
			return nil
		}
	}
	return ErrSessionNotFound
}

type stubSettingsRepo struct {
	records map[string]Settings
	saves   int
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{records: make(map[string]Settings)}
}

func (r *stubSettingsRepo) Get(ctx context.Context, userID string) (*Settings, error) {
	s, ok := r.records[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *stubSettingsRepo) Save(ctx context.Context, s Settings) error {
	r.records[s.UserID] = s
	r.saves++
	return nil
}

func (r *stubSettingsRepo) List(ctx context.Context) ([]Settings, error) {
	out := make([]Settings, 0, len(r.records))
	for _, s := range r.records {
		out = append(out, s)
	}
	return out, nil
}

func newTestService(sessions *stubSessionRepo, settings *stubSettingsRepo, now time.Time) *Service {
	svc := NewService(sessions, settings, CalorieModeMETTable)
	svc.now = func() time.Time { return now }
	return svc
}

func TestLogSessionDerivesCalories(t *testing.T) {
	sessions := &stubSessionRepo{}
	settings := newStubSettingsRepo()
	svc := newTestService(sessions, settings, day(2025, time.June, 11))

	logged, err := svc.LogSession(context.Background(), LogSessionInput{
		UserID:       "user-1",
		Date:         day(2025, time.June, 10),
		Activity:     ActivityWalk,
		BodyMassLb:   200,
		DurationMin:  60,
		Distance:     5,
		DistanceUnit: UnitKm,
	})
	require.NoError(t, err)
	require.InDelta(t, 317.51, logged.CaloriesKcal, 0.01)
	require.Len(t, sessions.sessions, 1)
	require.NotEmpty(t, logged.ID)
}

func TestLogSessionNormalizesMiles(t *testing.T) {
	sessions := &stubSessionRepo{}
	svc := newTestService(sessions, newStubSettingsRepo(), day(2025, time.June, 11))

	logged, err := svc.LogSession(context.Background(), LogSessionInput{
		UserID:       "user-1",
		Date:         day(2025, time.June, 10),
		Activity:     ActivityWalk,
		BodyMassLb:   200,
		DurationMin:  60,
		Distance:     3,
		DistanceUnit: UnitMiles,
	})
	require.NoError(t, err)
	require.InDelta(t, 4.82802, logged.DistanceKm, 1e-5)
}

func TestLogSessionRejectsFutureDate(t *testing.T) {
	sessions := &stubSessionRepo{}
	svc := newTestService(sessions, newStubSettingsRepo(), day(2025, time.June, 11))

	_, err := svc.LogSession(context.Background(), LogSessionInput{
		UserID:      "user-1",
		Date:        day(2025, time.June, 12),
		Activity:    ActivityWalk,
		BodyMassLb:  200,
		DurationMin: 60,
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, sessions.sessions, "nothing may persist on validation failure")
}

func TestLogSessionRejectsMissingIntensity(t *testing.T) {
	sessions := &stubSessionRepo{}
	svc := newTestService(sessions, newStubSettingsRepo(), day(2025, time.June, 11))

	_, err := svc.LogSession(context.Background(), LogSessionInput{
		UserID:      "user-1",
		Date:        day(2025, time.June, 10),
		Activity:    ActivitySoccer,
		BodyMassLb:  180,
		DurationMin: 90,
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, sessions.sessions)
}

func TestGetSettingsPersistsDefaultsOnFirstRead(t *testing.T) {
	settings := newStubSettingsRepo()
	svc := newTestService(&stubSessionRepo{}, settings, day(2025, time.June, 11))

	got, err := svc.GetSettings(context.Background(), "fresh-user")
	require.NoError(t, err)
	require.Equal(t, "fresh-user", got.UserID)
	require.InDelta(t, 100.0, got.MonthlyDistanceGoalKm, 1e-9)
	require.Equal(t, 1, settings.saves, "default record is persisted as a side effect")

	_, err = svc.GetSettings(context.Background(), "fresh-user")
	require.NoError(t, err)
	require.Equal(t, 1, settings.saves, "second read does not rewrite")
}

func TestMonthlyProgress(t *testing.T) {
	sessions := &stubSessionRepo{sessions: []Session{
		{UserID: "user-1", Date: day(2025, time.June, 3), Activity: ActivityWalk, BodyMassLb: 200, DistanceKm: 30, DurationMin: 300, CaloriesKcal: 1000},
		{UserID: "user-1", Date: day(2025, time.June, 9), Activity: ActivityWalk, BodyMassLb: 198, DistanceKm: 20, DurationMin: 200, CaloriesKcal: 800},
		{UserID: "user-1", Date: day(2025, time.May, 20), Activity: ActivityWalk, BodyMassLb: 204, DistanceKm: 25, DurationMin: 250, CaloriesKcal: 900},
		{UserID: "other", Date: day(2025, time.June, 3), Activity: ActivityWalk, BodyMassLb: 150, DistanceKm: 99, DurationMin: 99, CaloriesKcal: 99},
	}}
	settings := newStubSettingsRepo()
	settings.records["user-1"] = DefaultSettings("user-1")
	svc := newTestService(sessions, settings, day(2025, time.June, 11))

	progress, err := svc.MonthlyProgress(context.Background(), "user-1", 2025, time.June)
	require.NoError(t, err)

	require.InDelta(t, 50.0, progress.Current.TotalDistanceKm, 1e-9)
	require.InDelta(t, 25.0, progress.Previous.TotalDistanceKm, 1e-9)
	require.True(t, progress.Deltas.DistanceKm.Valid)
	require.InDelta(t, 25.0, progress.Deltas.DistanceKm.Delta, 1e-9)
	require.Equal(t, DirectionUp, progress.Deltas.DistanceKm.Direction)

	require.InDelta(t, 0.5, progress.GoalPercent, 1e-9)
	require.True(t, progress.HasWeight)
	require.InDelta(t, 198.0, progress.CurrentWeightLb, 1e-9)
	require.True(t, progress.BMI.Valid)
	require.InDelta(t, TargetWeightLb(175), progress.TargetWeightLb, 1e-9)

	// June 9 falls inside the week containing June 11.
	require.Equal(t, 1, progress.Week.ActiveDays)
	require.Equal(t, 5, progress.WeeklyGoal)
}

func TestMonthlyProgressEmptyHistory(t *testing.T) {
	svc := newTestService(&stubSessionRepo{}, newStubSettingsRepo(), day(2025, time.June, 11))

	progress, err := svc.MonthlyProgress(context.Background(), "user-1", 2025, time.June)
	require.NoError(t, err)
	require.Zero(t, progress.Current.SessionCount)
	require.False(t, progress.Deltas.DistanceKm.Valid)
	require.False(t, progress.HasWeight)
	require.False(t, progress.BMI.Valid, "BMI is unavailable without a logged weight")
	require.Zero(t, progress.GoalPercent)
}

func TestDeleteSessionNotFound(t *testing.T) {
	svc := newTestService(&stubSessionRepo{}, newStubSettingsRepo(), day(2025, time.June, 11))
	err := svc.DeleteSession(context.Background(), "user-1", day(2025, time.June, 10), ActivityWalk)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCreateUser(t *testing.T) {
	settings := newStubSettingsRepo()
	svc := newTestService(&stubSessionRepo{}, settings, day(2025, time.June, 11))

	created, err := svc.CreateUser(context.Background())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(created.UserID, "user_"))
	require.Len(t, created.UserID, len("user_")+6)
	require.Contains(t, settings.records, created.UserID)
}
