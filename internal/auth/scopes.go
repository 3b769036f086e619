package auth

// Known OAuth scopes used by the workout service.
const (
	ScopeWorkoutsWrite = "workouts:write"
	ScopeWorkoutsRead  = "workouts:read"
	ScopeSettingsWrite = "settings:write"
)
