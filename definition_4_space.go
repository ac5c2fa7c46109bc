package availability

import (
	"fmt"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// Space is a bookable place. It is read only once built.
type Space struct {
	OpeningTimes WeeklySchedule
	TimeZone     string

	// minutes required between now and the start of a booking
	MinimumNotice int
}

type ParamsNewSpace struct {
	OpeningTimes WeeklySchedule `valid:"-"`
	TimeZone     string         `valid:"required"`

	MinimumNotice int
}

func (params *ParamsNewSpace) IsValid() error {
	if params == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSpace",
			Issue: goerrors.ErrNilInput{
				InputName: "ParamsNewSpace",
			},
		}
	}

	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSpace",
			Issue:  errValidation,
		}
	}

	if len(strings.TrimSpace(params.TimeZone)) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSpace",
			Issue: goerrors.ErrNilInput{
				InputName: "TimeZone",
			},
		}
	}

	if params.MinimumNotice < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSpace",
			Issue: goerrors.ErrNegativeInput{
				InputName: "MinimumNotice",
			},
		}
	}

	return nil
}

func NewSpace(params *ParamsNewSpace) (*Space, error) {
	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	schedule, errSchedule := params.OpeningTimes.normalized()
	if errSchedule != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewSpace",
				Issue:  errSchedule,
			}
	}

	return &Space{
			OpeningTimes:  schedule,
			TimeZone:      strings.TrimSpace(params.TimeZone),
			MinimumNotice: params.MinimumNotice,
		},
		nil
}

func (s *Space) String() string {
	return fmt.Sprintf(
		"Space{TimeZone: %q, MinimumNotice: %d, OpeningTimes: %s}",

		s.TimeZone,
		s.MinimumNotice,
		s.OpeningTimes,
	)
}
