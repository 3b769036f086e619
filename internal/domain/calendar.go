package domain

import "time"

// DayCell is one slot in the month grid. Cells outside the month are
// placeholders with InMonth=false and a zero Date.
type DayCell struct {
	Date    time.Time
	InMonth bool
	Active  bool
	Today   bool
}

// MonthGrid lays out the target month as Monday-first weeks of seven cells,
// flagging dates that have at least one logged session. The grid carries
// plain values only; rendering belongs to the caller.
func MonthGrid(sessions []Session, year int, month time.Month, today time.Time) [][]DayCell {
	active := make(map[time.Time]struct{})
	for _, s := range sessions {
		if s.Date.Year() == year && s.Date.Month() == month {
			active[s.Date] = struct{}{}
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayDate := DateOnly(today)

	var weeks [][]DayCell
	week := make([]DayCell, 0, 7)

	leading := (int(first.Weekday()) + 6) % 7
	for i := 0; i < leading; i++ {
		week = append(week, DayCell{})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		_, hasSession := active[date]
		week = append(week, DayCell{
			Date:    date,
			InMonth: true,
			Active:  hasSession,
			Today:   date.Equal(todayDate),
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]DayCell, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, DayCell{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
