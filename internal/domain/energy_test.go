package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCalorieMode(t *testing.T) {
	mode, err := ParseCalorieMode("met-table")
	require.NoError(t, err)
	require.Equal(t, CalorieModeMETTable, mode)

	mode, err = ParseCalorieMode("legacy-gender")
	require.NoError(t, err)
	require.Equal(t, CalorieModeLegacyGender, mode)

	_, err = ParseCalorieMode("legacy")
	require.Error(t, err, "a misspelled mode must not fall back to the table")

	_, err = ParseCalorieMode("")
	require.Error(t, err)
}

func TestEstimateCaloriesWalk(t *testing.T) {
	got, err := EstimateCalories(CalorieModeMETTable, EnergyInput{
		Activity:    ActivityWalk,
		BodyMassLb:  200,
		DurationMin: 60,
	})
	require.NoError(t, err)
	// MET 3.5 * 90.7184 kg * 1 h
	require.InDelta(t, 317.51, got, 0.01)
}

func TestEstimateCaloriesScalesLinearly(t *testing.T) {
	base := EnergyInput{Activity: ActivityWalk, BodyMassLb: 150, DurationMin: 45}

	one, err := EstimateCalories(CalorieModeMETTable, base)
	require.NoError(t, err)

	doubleMass := base
	doubleMass.BodyMassLb *= 2
	two, err := EstimateCalories(CalorieModeMETTable, doubleMass)
	require.NoError(t, err)
	require.InDelta(t, 2*one, two, 0.02)

	doubleDuration := base
	doubleDuration.DurationMin *= 2
	two, err = EstimateCalories(CalorieModeMETTable, doubleDuration)
	require.NoError(t, err)
	require.InDelta(t, 2*one, two, 0.02)
}

func TestEstimateCaloriesClimbTerm(t *testing.T) {
	got, err := EstimateCalories(CalorieModeMETTable, EnergyInput{
		Activity:       ActivityWalk,
		BodyMassLb:     200,
		DurationMin:    60,
		VerticalGainFt: 1000,
	})
	require.NoError(t, err)
	// flat 317.5144 + climb 90.7184kg * 304.8m * 9.81 / 0.25 / 4184
	require.InDelta(t, 576.85, got, 0.05)
}

func TestEstimateCaloriesIntensityGated(t *testing.T) {
	got, err := EstimateCalories(CalorieModeMETTable, EnergyInput{
		Activity:    ActivityBasketball21,
		Intensity:   IntensityModerate,
		BodyMassLb:  200,
		DurationMin: 60,
	})
	require.NoError(t, err)
	require.InDelta(t, 544.31, got, 0.01)
}

func TestEstimateCaloriesMissingIntensity(t *testing.T) {
	_, err := EstimateCalories(CalorieModeMETTable, EnergyInput{
		Activity:    ActivitySpikeball,
		BodyMassLb:  180,
		DurationMin: 30,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestEstimateCaloriesUnknownActivity(t *testing.T) {
	_, err := EstimateCalories(CalorieModeMETTable, EnergyInput{
		Activity:    ActivityType("Curling"),
		BodyMassLb:  180,
		DurationMin: 30,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestEstimateCaloriesLegacyGenderMode(t *testing.T) {
	male, err := EstimateCalories(CalorieModeLegacyGender, EnergyInput{
		Activity:    ActivityWalk,
		BodyMassLb:  200,
		DurationMin: 60,
		Gender:      GenderMale,
	})
	require.NoError(t, err)
	require.InDelta(t, 725.75, male, 0.01)

	female, err := EstimateCalories(CalorieModeLegacyGender, EnergyInput{
		Activity:    ActivityWalk,
		BodyMassLb:  200,
		DurationMin: 60,
		Gender:      GenderFemale,
	})
	require.NoError(t, err)
	require.InDelta(t, 635.03, female, 0.01)
}

func TestEstimateCaloriesNonNegative(t *testing.T) {
	for activity, table := range metByIntensity {
		for intensity := range table {
			got, err := EstimateCalories(CalorieModeMETTable, EnergyInput{
				Activity:    activity,
				Intensity:   intensity,
				BodyMassLb:  1,
				DurationMin: 1,
			})
			require.NoError(t, err)
			require.GreaterOrEqual(t, got, 0.0)
		}
	}
}
