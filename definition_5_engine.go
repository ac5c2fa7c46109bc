package availability

import (
	"time"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"github.com/rs/zerolog"
)

// Engine computes availability calendars.
// It holds no query state and is safe for concurrent use.
type Engine struct {
	projector *TimezoneProjector
	logger    zerolog.Logger
}

type ParamsNewEngine struct {
	Projector *TimezoneProjector `valid:"required"`
	Logger    *zerolog.Logger    `valid:"-"`
}

func NewEngine(params *ParamsNewEngine) (*Engine, error) {
	if params == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewEngine",
				Issue: goerrors.ErrNilInput{
					InputName: "ParamsNewEngine",
				},
			}
	}

	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Availability",
				Caller:      "NewEngine",
				Issue:       errValidation,
			}
	}

	logger := zerolog.Nop()
	if params.Logger != nil {
		logger = *params.Logger
	}

	return &Engine{
			projector: params.Projector,
			logger:    logger,
		},
		nil
}

// NewDefaultEngine uses the system time zone database behind a cache.
func NewDefaultEngine(logger *zerolog.Logger) (*Engine, error) {
	projector, errProjector := NewTimezoneProjector(
		NewCachedLocationLoader(SystemLocationLoader),
	)
	if errProjector != nil {
		return nil,
			errProjector
	}

	return NewEngine(
		&ParamsNewEngine{
			Projector: projector,
			Logger:    logger,
		},
	)
}

type ParamsFetchAvailability struct {
	Space *Space
	Now   time.Time

	NumberOfDays int
}

func (params *ParamsFetchAvailability) IsValid() error {
	if params == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsFetchAvailability",
			Issue: goerrors.ErrNilInput{
				InputName: "ParamsFetchAvailability",
			},
		}
	}

	if params.Space == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsFetchAvailability",
			Issue: goerrors.ErrNilInput{
				InputName: "Space",
			},
		}
	}

	if params.Space.MinimumNotice < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsFetchAvailability",
			Issue: goerrors.ErrNegativeInput{
				InputName: "MinimumNotice",
			},
		}
	}

	return nil
}

// FetchAvailability returns the remaining bookable window for each of the
// NumberOfDays local calendar days starting with the day of Now.
// Days are keyed by their ISO date in the space time zone.
func (e *Engine) FetchAvailability(params *ParamsFetchAvailability) (AvailabilityCalendar, error) {
	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	location, errLocation := e.projector.Location(params.Space.TimeZone)
	if errLocation != nil {
		return nil,
			errLocation
	}

	if params.NumberOfDays < 1 {
		return AvailabilityCalendar{},
			nil
	}

	result := make(AvailabilityCalendar)

	noticeCleared := projectInto(
		AddMinutes(params.Now, params.Space.MinimumNotice),
		location,
	)

	for _, day := range calendarDays(params.Now, location, params.NumberOfDays) {
		result[day.Date] = openingTimesForDay(
			&paramsOpeningTimesForDay{
				Day:           day,
				NoticeCleared: noticeCleared,
				Schedule:      params.Space.OpeningTimes,
			},
		)
	}

	e.logger.Debug().
		Str("time_zone", params.Space.TimeZone).
		Time("now", params.Now).
		Str("notice_cleared", noticeCleared.Date+" "+noticeCleared.Time.String()).
		Int("days", params.NumberOfDays).
		Int("open_days", result.OpenDays()).
		Msg("availability fetched")

	return result,
		nil
}
