package domain

// TargetBMI is the fixed body-mass-index constant used to derive an ideal
// target weight. It is not a judgment on the current BMI.
const TargetBMI = 24.9

// GoalPercent reports monthly distance-goal completion in [0, 1], capped at
// 1. A zero or negative goal yields 0 rather than a division error.
func GoalPercent(totalKm, goalKm float64) float64 {
	if goalKm <= 0 {
		return 0
	}
	percent := totalKm / goalKm
	if percent > 1 {
		return 1
	}
	return percent
}

// BMIResult carries a BMI value or marks it unavailable. A brand-new user
// with no logged weight has no BMI, not a BMI of zero.
type BMIResult struct {
	Valid bool
	Value float64
}

// BMI computes body mass index from a weight in pounds and height in cm.
func BMI(weightLb, heightCm float64) BMIResult {
	if weightLb <= 0 || heightCm <= 0 {
		return BMIResult{}
	}
	heightM := heightCm / 100
	return BMIResult{Valid: true, Value: LbToKg(weightLb) / (heightM * heightM)}
}

// TargetWeightLb derives the weight in pounds that would put the user at
// TargetBMI for the given height. Pure function of height and the constant.
func TargetWeightLb(heightCm float64) float64 {
	heightM := heightCm / 100
	return KgToLb(TargetBMI * heightM * heightM)
}

// LatestBodyMassLb returns the body mass of the most recent session by date,
// which the progress view treats as the current weight. The second return is
// false when no sessions exist.
func LatestBodyMassLb(sessions []Session) (float64, bool) {
	var (
		found  bool
		latest Session
	)
	for _, s := range sessions {
		if !found || s.Date.After(latest.Date) {
			latest = s
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return latest.BodyMassLb, true
}
