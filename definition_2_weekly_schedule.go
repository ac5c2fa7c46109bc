package availability

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

// WeeklySchedule holds the opening times per ISO weekday.
type WeeklySchedule map[Weekday]OpeningTimes

// OpeningTimesFor returns the window of the weekday, resolved modulo 7.
// Keys are resolved the same way, so 0 and 7 both read as Sunday.
// Missing or malformed entries are reported closed.
func (ws WeeklySchedule) OpeningTimesFor(day Weekday) OpeningTimes {
	openingTimes, exists := ws.lookup(normalizeWeekday(int(day)))
	if !exists {
		return Closed()
	}

	if openingTimes.IsValid() != nil || openingTimes.IsClosed() {
		return Closed()
	}

	return openingTimes
}

// lookup prefers the ISO key and falls back to the lowest alias of the day.
func (ws WeeklySchedule) lookup(day Weekday) (OpeningTimes, bool) {
	if openingTimes, exists := ws[day]; exists {
		return openingTimes,
			true
	}

	var (
		result OpeningTimes
		alias  Weekday
		found  bool
	)

	for key, openingTimes := range ws {
		if normalizeWeekday(int(key)) != day {
			continue
		}

		if !found || key < alias {
			result, alias, found = openingTimes, key, true
		}
	}

	return result,
		found
}

// normalized returns a copy with weekday keys resolved to 1..7.
func (ws WeeklySchedule) normalized() (WeeklySchedule, error) {
	result := make(WeeklySchedule, len(ws))

	for day, openingTimes := range ws {
		if day > daysPerWeek {
			return nil,
				goerrors.ErrInvalidInput{
					Caller:     "normalized - WeeklySchedule",
					InputName:  "weekday",
					InputValue: int(day),
					Issue:      errors.New("weekday out of range 0..7"),
				}
		}

		key := normalizeWeekday(int(day))

		if _, duplicate := result[key]; duplicate {
			return nil,
				goerrors.ErrInvalidInput{
					Caller:     "normalized - WeeklySchedule",
					InputName:  "weekday",
					InputValue: key.String(),
					Issue:      errors.New("weekday defined twice"),
				}
		}

		if errValid := openingTimes.IsValid(); errValid != nil {
			return nil,
				goerrors.ErrInvalidInput{
					Caller:     "normalized - WeeklySchedule",
					InputName:  key.String(),
					InputValue: openingTimes.String(),
					Issue:      errValid,
				}
		}

		result[key] = openingTimes
	}

	return result,
		nil
}

func (ws WeeklySchedule) String() string {
	days := make([]Weekday, 0, len(ws))

	for day := range ws {
		days = append(days, day)
	}

	sort.Slice(
		days,
		func(i, j int) bool {
			return days[i] < days[j]
		},
	)

	var sb strings.Builder
	sb.WriteString("WeeklySchedule{\n")

	for _, day := range days {
		sb.WriteString(fmt.Sprintf("\t%s: %s,\n", day, ws[day]))
	}

	sb.WriteString("}")

	return sb.String()
}
