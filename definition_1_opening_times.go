package availability

import (
	"errors"

	goerrors "github.com/TudorHulban/go-errors"
)

// OpeningTimes is a single continuous opening window.
// A nil Open or Close means closed, encoded as {}.
type OpeningTimes struct {
	Open  *Time `json:"open,omitempty"  yaml:"open,omitempty"`
	Close *Time `json:"close,omitempty" yaml:"close,omitempty"`
}

// Closed is the value of a day without bookable time.
func Closed() OpeningTimes {
	return OpeningTimes{}
}

func NewOpeningTimes(open, closing Time) OpeningTimes {
	return OpeningTimes{
		Open:  &open,
		Close: &closing,
	}
}

func (ot OpeningTimes) IsClosed() bool {
	return ot.Open == nil || ot.Close == nil
}

// IsValid accepts closed values and windows with open strictly before close.
func (ot OpeningTimes) IsValid() error {
	if ot.Open == nil && ot.Close == nil {
		return nil
	}

	if ot.Open == nil || ot.Close == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - OpeningTimes",
			Issue: goerrors.ErrNilInput{
				InputName: ternary(ot.Open == nil, "Open", "Close"),
			},
		}
	}

	if !ot.Open.isValidOpen() {
		return goerrors.ErrInvalidInput{
			Caller:     "IsValid - OpeningTimes",
			InputName:  "Open",
			InputValue: ot.Open.String(),
			Issue:      errors.New("open time of day out of range"),
		}
	}

	if !ot.Close.isValidClose() {
		return goerrors.ErrInvalidInput{
			Caller:     "IsValid - OpeningTimes",
			InputName:  "Close",
			InputValue: ot.Close.String(),
			Issue:      errors.New("close time of day out of range"),
		}
	}

	if CompareTimes(*ot.Open, *ot.Close) >= 0 {
		return goerrors.ErrInvalidInput{
			Caller:     "IsValid - OpeningTimes",
			InputName:  "Close",
			InputValue: ot.Close.String(),
			Issue:      errors.New("close must be after open"),
		}
	}

	return nil
}

func (ot OpeningTimes) String() string {
	if ot.IsClosed() {
		return "closed"
	}

	return ot.Open.String() + "-" + ot.Close.String()
}
