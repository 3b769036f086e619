package domain

import (
	"sort"
	"time"
)

// MonthlySummary holds the per-month totals presented on the progress page.
type MonthlySummary struct {
	Year              int
	Month             time.Month
	TotalDistanceKm   float64
	TotalDurationMin  float64
	TotalCaloriesKcal float64
	TotalVerticalFt   float64
	ActiveDays        int
	SessionCount      int
	AvgSpeedKmh       float64
}

// AggregateMonth restricts sessions to the target month and totals them.
// Multiple sessions on the same date count once toward ActiveDays. A month
// with no duration yields an average speed of zero rather than an error.
func AggregateMonth(sessions []Session, year int, month time.Month) MonthlySummary {
	summary := MonthlySummary{Year: year, Month: month}
	days := make(map[time.Time]struct{})

	for _, s := range sessions {
		if s.Date.Year() != year || s.Date.Month() != month {
			continue
		}
		summary.TotalDistanceKm += s.DistanceKm
		summary.TotalDurationMin += s.DurationMin
		summary.TotalCaloriesKcal += s.CaloriesKcal
		summary.TotalVerticalFt += s.VerticalGainFt
		summary.SessionCount++
		days[s.Date] = struct{}{}
	}

	summary.ActiveDays = len(days)
	if summary.TotalDurationMin > 0 {
		summary.AvgSpeedKmh = summary.TotalDistanceKm / (summary.TotalDurationMin / 60)
	}
	return summary
}

// ActivityTotals groups a month's totals by activity for the comparison view.
type ActivityTotals struct {
	Activity          ActivityType
	SessionCount      int
	TotalDistanceKm   float64
	TotalDurationMin  float64
	TotalCaloriesKcal float64
	CaloriesPerHour   float64
	CaloriesPerKm     float64
}

// BreakdownByActivity computes per-activity efficiency totals for the target
// month, sorted by activity name for stable output. Both efficiency ratios
// fall back to zero when their denominator is zero.
func BreakdownByActivity(sessions []Session, year int, month time.Month) []ActivityTotals {
	byActivity := make(map[ActivityType]*ActivityTotals)

	for _, s := range sessions {
		if s.Date.Year() != year || s.Date.Month() != month {
			continue
		}
		totals, ok := byActivity[s.Activity]
		if !ok {
			totals = &ActivityTotals{Activity: s.Activity}
			byActivity[s.Activity] = totals
		}
		totals.SessionCount++
		totals.TotalDistanceKm += s.DistanceKm
		totals.TotalDurationMin += s.DurationMin
		totals.TotalCaloriesKcal += s.CaloriesKcal
	}

	out := make([]ActivityTotals, 0, len(byActivity))
	for _, totals := range byActivity {
		if totals.TotalDurationMin > 0 {
			totals.CaloriesPerHour = totals.TotalCaloriesKcal / (totals.TotalDurationMin / 60)
		}
		if totals.TotalDistanceKm > 0 {
			totals.CaloriesPerKm = totals.TotalCaloriesKcal / totals.TotalDistanceKm
		}
		out = append(out, *totals)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Activity < out[j].Activity })
	return out
}

// WeekSummary counts active days inside the Monday-to-Sunday week that
// contains the reference date, for the weekly tracker widget.
type WeekSummary struct {
	Start      time.Time
	End        time.Time
	ActiveDays int
}

// AggregateWeek computes the weekly tracker counts for the week holding ref.
func AggregateWeek(sessions []Session, ref time.Time) WeekSummary {
	day := DateOnly(ref)
	// time.Weekday is Sunday-based; shift so Monday starts the week.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)

	days := make(map[time.Time]struct{})
	for _, s := range sessions {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		days[s.Date] = struct{}{}
	}
	return WeekSummary{Start: start, End: end, ActiveDays: len(days)}
}
