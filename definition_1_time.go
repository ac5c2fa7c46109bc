package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

const (
	minutesPerHour = 60
	slotMinutes    = 15

	// hourEndOfDay is only valid as a close time, meaning midnight of the next day.
	hourEndOfDay = 24
)

// Time is a local time of day.
type Time struct {
	Hour   int `json:"hour"   yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

func (t Time) totalMinutes() int {
	return t.Hour*minutesPerHour + t.Minute
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t Time) isValidOpen() bool {
	return t.Hour >= 0 && t.Hour < hourEndOfDay &&
		t.Minute >= 0 && t.Minute < minutesPerHour
}

func (t Time) isValidClose() bool {
	if t.Hour == hourEndOfDay {
		return t.Minute == 0
	}

	return t.isValidOpen()
}

// CompareTimes returns the difference of both times in minutes:
//   - negative, if timeA is earlier
//   - positive, if timeB is earlier
func CompareTimes(timeA, timeB Time) int {
	return timeA.totalMinutes() - timeB.totalMinutes()
}

// Next15MinutesInterval returns the first quarter hour mark strictly after the passed minute:
//
//	[0..14] => 15, [15..29] => 30, [30..44] => 45, [45..59] => 0
func Next15MinutesInterval(minute int) int {
	return (minute/slotMinutes + 1) * slotMinutes % minutesPerHour
}

// NextSlot returns the first bookable time strictly after the passed one.
// Hour can reach 24 when rounding past 23:45.
func NextSlot(t Time) Time {
	minute := Next15MinutesInterval(t.Minute)

	return Time{
		Hour:   ternary(minute == 0, t.Hour+1, t.Hour),
		Minute: minute,
	}
}

// ParseTime parses a "HH:MM" time of day. "24:00" is accepted.
func ParseTime(value string) (Time, error) {
	hour, minute, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return Time{},
			goerrors.ErrInvalidInput{
				Caller:     "ParseTime",
				InputName:  "value",
				InputValue: value,
				Issue:      errors.New("expected HH:MM"),
			}
	}

	h, errHour := strconv.Atoi(hour)
	if errHour != nil {
		return Time{},
			goerrors.ErrInvalidInput{
				Caller:     "ParseTime",
				InputName:  "hour",
				InputValue: value,
				Issue:      errHour,
			}
	}

	m, errMinute := strconv.Atoi(minute)
	if errMinute != nil {
		return Time{},
			goerrors.ErrInvalidInput{
				Caller:     "ParseTime",
				InputName:  "minute",
				InputValue: value,
				Issue:      errMinute,
			}
	}

	result := Time{
		Hour:   h,
		Minute: m,
	}

	if !result.isValidClose() {
		return Time{},
			goerrors.ErrInvalidInput{
				Caller:     "ParseTime",
				InputName:  "value",
				InputValue: value,
				Issue:      errors.New("time of day out of range"),
			}
	}

	return result,
		nil
}
