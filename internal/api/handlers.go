// Package api exposes HTTP handlers for the workout service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Boromir-Stark/My-Workout-App/internal/auth"
	"github.com/Boromir-Stark/My-Workout-App/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/sessions", h.sessions)
	mux.HandleFunc("/v1/progress", h.progress)
	mux.HandleFunc("/v1/activities/comparison", h.activityComparison)
	mux.HandleFunc("/v1/calendar", h.calendar)
	mux.HandleFunc("/v1/settings", h.settings)
	mux.HandleFunc("/v1/users", h.users)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) sessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.logSession(w, r)
	case http.MethodGet:
		h.listSessions(w, r)
	case http.MethodDelete:
		h.deleteSession(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) logSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:write required")
		return
	}

	var req LogSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	session, err := h.service.LogSession(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionView(*session))
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if raw := r.URL.Query().Get("month"); raw != "" {
		year, month, err := parseMonth(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		filtered := sessions[:0]
		for _, s := range sessions {
			if s.Date.Year() == year && s.Date.Month() == month {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	items := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, toSessionView(s))
	}
	writeJSON(w, http.StatusOK, ListSessionsResponse{Items: items})
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:write required")
		return
	}

	query := r.URL.Query()
	userID := query.Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	date, err := time.Parse(time.DateOnly, query.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "date must be YYYY-MM-DD")
		return
	}

	activity, err := domain.ParseActivityType(query.Get("activity_type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	if err := h.service.DeleteSession(r.Context(), userID, date, activity); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	year, month, err := monthOrNow(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	progress, err := h.service.MonthlyProgress(r.Context(), userID, year, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressView(*progress))
}

func (h *Handler) activityComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	year, month, err := monthOrNow(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	breakdown, err := h.service.ActivityComparison(r.Context(), userID, year, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]ActivityTotalsView, 0, len(breakdown))
	for _, totals := range breakdown {
		items = append(items, ActivityTotalsView{
			ActivityType:      string(totals.Activity),
			SessionCount:      totals.SessionCount,
			TotalDistanceKm:   totals.TotalDistanceKm,
			TotalDurationMin:  totals.TotalDurationMin,
			TotalCaloriesKcal: totals.TotalCaloriesKcal,
			CaloriesPerHour:   totals.CaloriesPerHour,
			CaloriesPerKm:     totals.CaloriesPerKm,
		})
	}
	writeJSON(w, http.StatusOK, ActivityComparisonResponse{Items: items})
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	year, month, err := monthOrNow(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	grid, err := h.service.MonthCalendar(r.Context(), userID, year, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	weeks := make([][]DayCellView, 0, len(grid))
	for _, week := range grid {
		cells := make([]DayCellView, 0, len(week))
		for _, cell := range week {
			view := DayCellView{InMonth: cell.InMonth, Active: cell.Active, Today: cell.Today}
			if cell.InMonth {
				view.Date = cell.Date.Format(time.DateOnly)
			}
			cells = append(cells, view)
		}
		weeks = append(weeks, cells)
	}
	writeJSON(w, http.StatusOK, CalendarResponse{
		Year:  year,
		Month: int(month),
		Weeks: weeks,
	})
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
			writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
			return
		}
		userID := r.URL.Query().Get("user_id")
		if strings.TrimSpace(userID) == "" {
			writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
			return
		}
		settings, err := h.service.GetSettings(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsView(*settings))
	case http.MethodPut:
		if !claims.HasScope(auth.ScopeSettingsWrite) {
			writeError(w, http.StatusForbidden, "forbidden", "scope settings:write required")
			return
		}
		var req SettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := h.service.UpdateSettings(r.Context(), req.ToSettings()); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
			writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
			return
		}
		users, err := h.service.ListUsers(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		items := make([]UserView, 0, len(users))
		for _, u := range users {
			items = append(items, UserView{UserID: u.UserID, DisplayName: u.DisplayName})
		}
		writeJSON(w, http.StatusOK, ListUsersResponse{Items: items})
	case http.MethodPost:
		if !claims.HasScope(auth.ScopeSettingsWrite) {
			writeError(w, http.StatusForbidden, "forbidden", "scope settings:write required")
			return
		}
		settings, err := h.service.CreateUser(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSettingsView(*settings))
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func parseMonth(raw string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, fmt.Errorf("month must be YYYY-MM")
	}
	return t.Year(), t.Month(), nil
}

func monthOrNow(raw string) (int, time.Month, error) {
	if raw == "" {
		now := time.Now().UTC()
		return now.Year(), now.Month(), nil
	}
	return parseMonth(raw)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "not_found", "session not found")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
