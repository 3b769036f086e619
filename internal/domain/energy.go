package domain

import (
	"fmt"
	"math"
)

// CalorieMode selects which walk formula a deployment uses. The two modes
// are intentionally kept apart: the MET table and the gender-derived MET
// disagree for Walk and must never be merged.
type CalorieMode string

const (
	// CalorieModeMETTable resolves MET from the per-activity tables.
	CalorieModeMETTable CalorieMode = "met-table"
	// CalorieModeLegacyGender is the single-activity legacy treadmill
	// formula: MET comes from the user's gender, not the activity.
	CalorieModeLegacyGender CalorieMode = "legacy-gender"
)

// ParseCalorieMode validates a configured mode string, so a misspelled
// deployment value fails at startup instead of silently picking a formula.
func ParseCalorieMode(raw string) (CalorieMode, error) {
	switch CalorieMode(raw) {
	case CalorieModeMETTable, CalorieModeLegacyGender:
		return CalorieMode(raw), nil
	}
	return "", fmt.Errorf("unknown calorie mode %q", raw)
}

const (
	gravity         = 9.81 // m/s^2
	climbEfficiency = 0.25 // assumed mechanical efficiency of climbing
	joulesPerKcal   = 4184
	legacyMETMale   = 8.0
	legacyMETFemale = 7.0
)

// metByActivity holds the fixed MET constants for distance activities.
var metByActivity = map[ActivityType]float64{
	ActivityWalk:           3.5,
	ActivityRollerblade:    9.0,
	ActivityStationaryBike: 7.5,
}

// metByIntensity holds MET constants for activities whose effort cannot be
// inferred from distance and must be graded by the user.
var metByIntensity = map[ActivityType]map[Intensity]float64{
	ActivityBasketball21: {
		IntensityLow:      4.5,
		IntensityModerate: 6.0,
		IntensityHigh:     8.0,
	},
	ActivitySpikeball: {
		IntensityLow:      4.0,
		IntensityModerate: 6.0,
		IntensityHigh:     8.0,
	},
	ActivitySoccer: {
		IntensityLow:      5.0,
		IntensityModerate: 7.0,
		IntensityHigh:     10.0,
	},
}

// EnergyInput carries everything the estimator needs for one session.
type EnergyInput struct {
	Activity       ActivityType
	Intensity      Intensity
	BodyMassLb     float64
	DurationMin    float64
	VerticalGainFt float64
	Gender         Gender // consulted only in legacy-gender mode
}

// ResolveMET looks up the MET constant for the input under the given mode.
// An unknown activity, or a missing intensity for an intensity-gated
// activity, is a validation error rather than a silent default.
func ResolveMET(mode CalorieMode, in EnergyInput) (float64, error) {
	if mode == CalorieModeLegacyGender {
		if in.Gender == GenderFemale {
			return legacyMETFemale, nil
		}
		return legacyMETMale, nil
	}

	if met, ok := metByActivity[in.Activity]; ok {
		return met, nil
	}
	if table, ok := metByIntensity[in.Activity]; ok {
		if in.Intensity == "" {
			return 0, fmt.Errorf("%w: intensity is required for %s", ErrValidation, in.Activity)
		}
		met, ok := table[in.Intensity]
		if !ok {
			return 0, fmt.Errorf("%w: unknown intensity %q", ErrValidation, in.Intensity)
		}
		return met, nil
	}
	return 0, fmt.Errorf("%w: no MET entry for activity %q", ErrValidation, in.Activity)
}

// EstimateCalories computes the calories burned for one session: a MET-based
// flat-terrain term plus, when elevation was gained, a work-based climb term.
// The result is non-negative and rounded to two decimals.
func EstimateCalories(mode CalorieMode, in EnergyInput) (float64, error) {
	met, err := ResolveMET(mode, in)
	if err != nil {
		return 0, err
	}

	massKg := LbToKg(in.BodyMassLb)
	flat := met * massKg * (in.DurationMin / 60)

	var climb float64
	if in.VerticalGainFt > 0 {
		gainM := FtToM(in.VerticalGainFt)
		climb = (massKg * gainM * gravity) / climbEfficiency / joulesPerKcal
	}

	return math.Round((flat+climb)*100) / 100, nil
}
