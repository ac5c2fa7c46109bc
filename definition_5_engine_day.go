package availability

import "time"

// localNoon keeps day stepping away from DST transitions, which happen at night.
const localNoon = 12

// calendarDays projects the local date of now and the following days.
func calendarDays(now time.Time, location *time.Location, numberOfDays int) []*LocalDate {
	year, month, day := now.In(location).Date()

	var result []*LocalDate

	for i := range numberOfDays {
		result = append(
			result,
			projectInto(
				time.Date(year, month, day+i, localNoon, 0, 0, 0, location),
				location,
			),
		)
	}

	return result
}

type paramsOpeningTimesForDay struct {
	Day           *LocalDate
	NoticeCleared *LocalDate
	Schedule      WeeklySchedule
}

// openingTimesForDay compares the day with the instant the notice period ends:
//   - days before it are closed
//   - on its day the window starts at the next slot after it
//   - later days get the scheduled window
func openingTimesForDay(params *paramsOpeningTimesForDay) OpeningTimes {
	scheduled := params.Schedule.OpeningTimesFor(params.Day.Weekday)
	if scheduled.IsClosed() {
		return Closed()
	}

	// ISO dates order lexicographically.
	if params.Day.Date < params.NoticeCleared.Date {
		return Closed()
	}

	if params.Day.Date > params.NoticeCleared.Date ||
		CompareTimes(params.NoticeCleared.Time, *scheduled.Open) < 0 {
		return NewOpeningTimes(*scheduled.Open, *scheduled.Close)
	}

	slot := NextSlot(params.NoticeCleared.Time)
	if CompareTimes(slot, *scheduled.Close) >= 0 {
		return Closed()
	}

	return NewOpeningTimes(slot, *scheduled.Close)
}
