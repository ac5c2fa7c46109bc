package availability

import (
	"errors"
	"time"

	goerrors "github.com/TudorHulban/go-errors"
)

const layoutISODate = "2006-01-02"

// LocalDate is an instant as observed in a time zone.
type LocalDate struct {
	Date    string
	Weekday Weekday
	Time    Time
}

type TimezoneProjector struct {
	loader LocationLoader
}

func NewTimezoneProjector(loader LocationLoader) (*TimezoneProjector, error) {
	if loader == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewTimezoneProjector",
				Issue: goerrors.ErrNilInput{
					InputName: "loader",
				},
			}
	}

	return &TimezoneProjector{
			loader: loader,
		},
		nil
}

// Location resolves the IANA name. An empty name is rejected
// as time.LoadLocation would silently return UTC for it.
func (p *TimezoneProjector) Location(timeZone string) (*time.Location, error) {
	if len(timeZone) == 0 {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "Location",
				InputName:  "TimeZone",
				InputValue: timeZone,
				Issue: goerrors.ErrNilInput{
					InputName: "TimeZone",
				},
			}
	}

	location, errLoad := p.loader.LoadLocation(timeZone)
	if errLoad != nil {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "Location",
				InputName:  "TimeZone",
				InputValue: timeZone,
				Issue:      errLoad,
			}
	}

	if location == nil {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "Location",
				InputName:  "TimeZone",
				InputValue: timeZone,
				Issue:      errors.New("loader returned no location"),
			}
	}

	return location,
		nil
}

// DateInTimezone returns the civil date, ISO weekday and time of day
// of the instant in the passed IANA time zone.
func (p *TimezoneProjector) DateInTimezone(instant time.Time, timeZone string) (*LocalDate, error) {
	location, errLocation := p.Location(timeZone)
	if errLocation != nil {
		return nil,
			errLocation
	}

	return projectInto(instant, location),
		nil
}

func projectInto(instant time.Time, location *time.Location) *LocalDate {
	local := instant.In(location)

	return &LocalDate{
		Date:    FormatISODate(local),
		Weekday: WeekdayOf(local),
		Time: Time{
			Hour:   local.Hour(),
			Minute: local.Minute(),
		},
	}
}

// AddMinutes offsets the absolute instant, ignoring wall clock changes.
func AddMinutes(instant time.Time, minutes int) time.Time {
	return instant.Add(time.Duration(minutes) * time.Minute)
}

// FormatISODate formats the date of t in its own location, f.e. "2020-09-07".
func FormatISODate(t time.Time) string {
	return t.Format(layoutISODate)
}
