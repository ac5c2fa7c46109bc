package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/TudorHulban/go-errors"
)

// Weekday uses ISO numbering, 1 is Monday and 7 is Sunday.
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysPerWeek = 7

var weekdayNames = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// WeekdayOf returns the ISO weekday of t in its own location.
func WeekdayOf(t time.Time) Weekday {
	return normalizeWeekday(int(t.Weekday()))
}

// normalizeWeekday resolves any index modulo 7 into 1..7, 0 being Sunday.
func normalizeWeekday(index int) Weekday {
	day := index % daysPerWeek
	if day <= 0 {
		day += daysPerWeek
	}

	return Weekday(day)
}

// Add moves the weekday by days, wrapping around the week in both directions.
func (w Weekday) Add(days int) Weekday {
	return normalizeWeekday(int(w) + days%daysPerWeek)
}

func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.IsValid() {
		return fmt.Sprintf("Weekday(%d)", w)
	}

	return time.Weekday(int(w) % daysPerWeek).String()
}

// ParseWeekday accepts ISO numbers, 0 as an alias of Sunday, and English day names.
func ParseWeekday(value string) (Weekday, error) {
	cleaned := strings.ToLower(strings.TrimSpace(value))

	if day, isName := weekdayNames[cleaned]; isName {
		return day,
			nil
	}

	index, errConv := strconv.Atoi(cleaned)
	if errConv != nil {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseWeekday",
				InputName:  "weekday",
				InputValue: value,
				Issue:      errConv,
			}
	}

	if index < 0 || index > daysPerWeek {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseWeekday",
				InputName:  "weekday",
				InputValue: value,
				Issue:      errors.New("weekday out of range 0..7"),
			}
	}

	return normalizeWeekday(index),
		nil
}
