// Package postgres provides pgx-backed persistence for sessions, settings
// and the event outbox.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Boromir-Stark/My-Workout-App/internal/domain"
	"github.com/Boromir-Stark/My-Workout-App/internal/events"
	"github.com/Boromir-Stark/My-Workout-App/internal/observability"
)

// Repository provides Postgres-backed storage for the workout service.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const sessionColumns = `session_id, user_id, session_date, activity_type, COALESCE(intensity, ''), body_mass_lb, duration_min, distance_km, vertical_gain_ft, calories_kcal, created_at`

// ListByUser returns every session stored for the user, newest date first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id=$1 ORDER BY session_date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Append persists the session and records its outbox event inside a single
// transaction, so the event is never published without the row existing.
func (r *Repository) Append(ctx context.Context, session domain.Session) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertSession = `INSERT INTO sessions (session_id, user_id, session_date, activity_type, intensity, body_mass_lb, duration_min, distance_km, vertical_gain_ft, calories_kcal, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err = tx.Exec(ctx, insertSession,
		session.ID,
		session.UserID,
		session.Date,
		session.Activity,
		nullIfEmpty(string(session.Intensity)),
		session.BodyMassLb,
		session.DurationMin,
		session.DistanceKm,
		session.VerticalGainFt,
		session.CaloriesKcal,
		session.CreatedAt,
	)
	if err != nil {
		return err
	}

	if err = insertOutbox(ctx, tx, "session.logged", session.UserID, session.ID, events.SessionLogged{
		SessionID:      session.ID,
		UserID:         session.UserID,
		ActivityType:   string(session.Activity),
		Date:           session.Date.Format(time.DateOnly),
		DistanceKm:     session.DistanceKm,
		DurationMin:    session.DurationMin,
		VerticalGainFt: session.VerticalGainFt,
		CaloriesKcal:   session.CaloriesKcal,
		LoggedAt:       session.CreatedAt,
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordSessionPersisted(string(session.Activity), session.CreatedAt)
	return nil
}

// Delete removes the user's session for the given date and activity.
func (r *Repository) Delete(ctx context.Context, userID string, date time.Time, activity domain.ActivityType) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id=$1 AND session_date=$2 AND activity_type=$3`, userID, date, activity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = domain.ErrSessionNotFound
		return err
	}

	if err = insertOutbox(ctx, tx, "session.deleted", userID, fmt.Sprintf("%s:%s:%s", userID, date.Format(time.DateOnly), activity), events.SessionDeleted{
		UserID:       userID,
		ActivityType: string(activity),
		Date:         date.Format(time.DateOnly),
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get loads the settings record, returning nil when the user is unknown.
func (r *Repository) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	const query = `SELECT user_id, display_name, height_cm, birth_year, gender, monthly_distance_goal_km, weekly_session_goal, theme
        FROM settings WHERE user_id=$1`

	row := r.pool.QueryRow(ctx, query, userID)
	var s domain.Settings
	if err := row.Scan(&s.UserID, &s.DisplayName, &s.HeightCm, &s.BirthYear, &s.Gender, &s.MonthlyDistanceGoalKm, &s.WeeklySessionGoal, &s.Theme); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Save replaces the settings record wholesale.
func (r *Repository) Save(ctx context.Context, s domain.Settings) error {
	const stmt = `INSERT INTO settings (user_id, display_name, height_cm, birth_year, gender, monthly_distance_goal_km, weekly_session_goal, theme)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (user_id) DO UPDATE SET
            display_name=EXCLUDED.display_name,
            height_cm=EXCLUDED.height_cm,
            birth_year=EXCLUDED.birth_year,
            gender=EXCLUDED.gender,
            monthly_distance_goal_km=EXCLUDED.monthly_distance_goal_km,
            weekly_session_goal=EXCLUDED.weekly_session_goal,
            theme=EXCLUDED.theme`

	_, err := r.pool.Exec(ctx, stmt,
		s.UserID, s.DisplayName, s.HeightCm, s.BirthYear, s.Gender,
		s.MonthlyDistanceGoalKm, s.WeeklySessionGoal, s.Theme,
	)
	return err
}

// List returns all settings records ordered by user id.
func (r *Repository) List(ctx context.Context) ([]domain.Settings, error) {
	const query = `SELECT user_id, display_name, height_cm, birth_year, gender, monthly_distance_goal_km, weekly_session_goal, theme
        FROM settings ORDER BY user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Settings, 0)
	for rows.Next() {
		var s domain.Settings
		if err := rows.Scan(&s.UserID, &s.DisplayName, &s.HeightCm, &s.BirthYear, &s.Gender, &s.MonthlyDistanceGoalKm, &s.WeeklySessionGoal, &s.Theme); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSession(row pgx.Row) (domain.Session, error) {
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.Activity, &s.Intensity, &s.BodyMassLb, &s.DurationMin, &s.DistanceKm, &s.VerticalGainFt, &s.CaloriesKcal, &s.CreatedAt); err != nil {
		return domain.Session{}, err
	}
	s.Date = domain.DateOnly(s.Date)
	return s, nil
}

func insertOutbox(ctx context.Context, tx pgx.Tx, eventType, userID, aggregateID string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta, ok := eventCatalog[eventType]
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}
	dedupeKey := fmt.Sprintf("%s:%s", aggregateID, eventType)

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err = tx.Exec(ctx, stmt, "session", aggregateID, eventType, meta.Topic, userID, body, dedupeKey)
	return err
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic string
}

var eventCatalog = map[string]EventMetadata{
	"session.logged":  {Topic: "workout_sessions"},
	"session.deleted": {Topic: "workout_sessions"},
}
