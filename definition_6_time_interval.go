package availability

import (
	"fmt"
	"time"
)

// TimeInterval is a bookable window in local wall clock unix seconds.
// SecondsOffset is the zone offset at TimeStart.
type TimeInterval struct {
	TimeStart     int64 `json:"timeStart"`
	TimeEnd       int64 `json:"timeEnd"`
	SecondsOffset int64 `json:"secondsOffset"`
}

func (interval *TimeInterval) GetUTCTimeStart() int64 {
	return interval.TimeStart - interval.SecondsOffset
}

func (interval *TimeInterval) GetUTCTimeEnd() int64 {
	return interval.TimeEnd - interval.SecondsOffset
}

func (interval *TimeInterval) Start() time.Time {
	return time.Unix(interval.GetUTCTimeStart(), 0).UTC()
}

func (interval *TimeInterval) End() time.Time {
	return time.Unix(interval.GetUTCTimeEnd(), 0).UTC()
}

func (interval TimeInterval) String() string {
	return fmt.Sprintf(
		"[%s - %s] Offset %.1fh",

		interval.Start().Format(time.RFC3339),
		interval.End().Format(time.RFC3339),
		float64(interval.SecondsOffset)/3600,
	)
}

func newTimeInterval(date time.Time, openingTimes OpeningTimes) TimeInterval {
	year, month, day := date.Date()
	location := date.Location()

	start := time.Date(year, month, day, openingTimes.Open.Hour, openingTimes.Open.Minute, 0, 0, location)

	// 24:00 normalizes to midnight of the next day.
	end := time.Date(year, month, day, openingTimes.Close.Hour, openingTimes.Close.Minute, 0, 0, location)

	_, offset := start.Zone()

	return TimeInterval{
		TimeStart:     start.Unix() + int64(offset),
		TimeEnd:       end.Unix() + int64(offset),
		SecondsOffset: int64(offset),
	}
}

// FetchIntervals returns the open days of the availability calendar
// as chronologically ordered intervals.
func (e *Engine) FetchIntervals(params *ParamsFetchAvailability) ([]TimeInterval, error) {
	calendar, errFetch := e.FetchAvailability(params)
	if errFetch != nil {
		return nil,
			errFetch
	}

	location, errLocation := e.projector.Location(params.Space.TimeZone)
	if errLocation != nil {
		return nil,
			errLocation
	}

	result := make([]TimeInterval, 0, calendar.OpenDays())

	for _, isoDate := range calendar.Dates() {
		openingTimes := calendar[isoDate]
		if openingTimes.IsClosed() {
			continue
		}

		date, errParse := time.ParseInLocation(layoutISODate, isoDate, location)
		if errParse != nil {
			return nil,
				fmt.Errorf("parse calendar date %q: %w", isoDate, errParse)
		}

		result = append(
			result,
			newTimeInterval(date, openingTimes),
		)
	}

	return result,
		nil
}
