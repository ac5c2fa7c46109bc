package availability

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProjector(t *testing.T) *TimezoneProjector {
	t.Helper()

	projector, errCr := NewTimezoneProjector(SystemLocationLoader)
	require.NoError(t, errCr)
	require.NotNil(t, projector)

	return projector
}

func TestDateInTimezone(t *testing.T) {
	projector := newTestProjector(t)

	t.Run(
		"1. instant in New York",
		func(t *testing.T) {
			localDate, errProject := projector.DateInTimezone(
				time.Date(2020, 9, 7, 15, 22, 0, 0, time.UTC),
				"America/New_York",
			)
			require.NoError(t, errProject)
			require.Equal(t,
				&LocalDate{
					Date:    "2020-09-07",
					Weekday: Monday,
					Time:    Time{Hour: 11, Minute: 22},
				},
				localDate,
			)
		},
	)

	t.Run(
		"2. 7 is Sunday",
		func(t *testing.T) {
			localDate, errProject := projector.DateInTimezone(
				time.Date(2020, 9, 6, 15, 22, 0, 0, time.UTC),
				"America/New_York",
			)
			require.NoError(t, errProject)
			require.Equal(t, Sunday, localDate.Weekday)
		},
	)

	t.Run(
		"3. next day when the zone is past midnight",
		func(t *testing.T) {
			instant := time.Date(2020, 9, 6, 22, 22, 0, 0, time.UTC)

			london, errLondon := projector.DateInTimezone(instant, "Europe/London")
			require.NoError(t, errLondon)
			require.Equal(t, Sunday, london.Weekday)
			require.Equal(t, "2020-09-06", london.Date)
			require.Equal(t, Time{Hour: 23, Minute: 22}, london.Time)

			tokyo, errTokyo := projector.DateInTimezone(instant, "Asia/Tokyo")
			require.NoError(t, errTokyo)
			require.Equal(t, Monday, tokyo.Weekday)
			require.Equal(t, "2020-09-07", tokyo.Date)
			require.Equal(t, Time{Hour: 7, Minute: 22}, tokyo.Time)
		},
	)

	t.Run(
		"4. previous day when the zone is before midnight",
		func(t *testing.T) {
			localDate, errProject := projector.DateInTimezone(
				time.Date(2020, 9, 7, 4, 22, 0, 0, time.UTC),
				"America/Los_Angeles",
			)
			require.NoError(t, errProject)
			require.Equal(t, Sunday, localDate.Weekday)
			require.Equal(t, "2020-09-06", localDate.Date)
			require.Equal(t, Time{Hour: 21, Minute: 22}, localDate.Time)
		},
	)

	t.Run(
		"5. daylight saving offset",
		func(t *testing.T) {
			winter, errWinter := projector.DateInTimezone(
				time.Date(2020, 1, 6, 15, 22, 0, 0, time.UTC),
				"America/New_York",
			)
			require.NoError(t, errWinter)
			require.Equal(t, Time{Hour: 10, Minute: 22}, winter.Time)
		},
	)

	t.Run(
		"6. invalid time zone",
		func(t *testing.T) {
			for _, timeZone := range []string{"", "Mars/Olympus_Mons"} {
				localDate, errProject := projector.DateInTimezone(time.Now(), timeZone)
				require.Error(t, errProject, timeZone)
				require.Nil(t, localDate)
			}
		},
	)
}

func TestNewTimezoneProjector(t *testing.T) {
	projector, errCr := NewTimezoneProjector(nil)
	require.Error(t, errCr)
	require.Nil(t, projector)

	failing, errFailing := NewTimezoneProjector(
		LocationLoaderFunc(
			func(string) (*time.Location, error) {
				return nil, errors.New("no database")
			},
		),
	)
	require.NoError(t, errFailing)

	_, errLocation := failing.Location("Europe/Paris")
	require.Error(t, errLocation)
}

func TestCachedLocationLoader(t *testing.T) {
	var calls atomic.Int32

	cached := NewCachedLocationLoader(
		LocationLoaderFunc(
			func(name string) (*time.Location, error) {
				calls.Add(1)

				return time.LoadLocation(name)
			},
		),
	)

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			location, errLoad := cached.LoadLocation("Asia/Tokyo")
			if assert.NoError(t, errLoad) {
				assert.Equal(t, "Asia/Tokyo", location.String())
			}
		}()
	}

	wg.Wait()

	_, errLoad := cached.LoadLocation("Asia/Tokyo")
	require.NoError(t, errLoad)
	require.LessOrEqual(t, calls.Load(), int32(8))
	require.GreaterOrEqual(t, calls.Load(), int32(1))

	callsBefore := calls.Load()

	_, errUnknown := cached.LoadLocation("Nowhere/Unknown")
	require.Error(t, errUnknown)

	_, errUnknownAgain := cached.LoadLocation("Nowhere/Unknown")
	require.Error(t, errUnknownAgain)
	require.Equal(t, callsBefore+2, calls.Load())
}

func TestAddMinutes(t *testing.T) {
	// US clocks went forward at 2020-03-08 07:00 UTC.
	before := time.Date(2020, 3, 8, 6, 30, 0, 0, time.UTC)

	after := AddMinutes(before, 60)
	require.Equal(t, time.Date(2020, 3, 8, 7, 30, 0, 0, time.UTC), after)

	location, errLoad := time.LoadLocation("America/New_York")
	require.NoError(t, errLoad)

	require.Equal(t, 1, before.In(location).Hour())
	require.Equal(t, 3, after.In(location).Hour())

	require.Equal(t, "2020-09-07", FormatISODate(time.Date(2020, 9, 7, 0, 0, 0, 0, time.UTC)))
}
