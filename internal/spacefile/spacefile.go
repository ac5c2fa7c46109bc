// Package spacefile reads space documents, YAML or JSON, into availability spaces.
package spacefile

import (
	"fmt"
	"io"
	"os"

	"github.com/TudorHulban/availability"
	"gopkg.in/yaml.v3"
)

type document struct {
	OpeningTimes  map[string]openingTimesDocument `yaml:"openingTimes"`
	TimeZone      string                          `yaml:"timeZone"`
	MinimumNotice int                             `yaml:"minimumNotice"`
}

type openingTimesDocument struct {
	Open  *timeDocument `yaml:"open"`
	Close *timeDocument `yaml:"close"`
}

// timeDocument accepts {hour, minute} mappings and "HH:MM" scalars.
type timeDocument availability.Time

func (td *timeDocument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, errParse := availability.ParseTime(node.Value)
		if errParse != nil {
			return fmt.Errorf("line %d: %w", node.Line, errParse)
		}

		*td = timeDocument(parsed)

		return nil
	}

	var value struct {
		Hour   int `yaml:"hour"`
		Minute int `yaml:"minute"`
	}

	if errDecode := node.Decode(&value); errDecode != nil {
		return errDecode
	}

	*td = timeDocument{
		Hour:   value.Hour,
		Minute: value.Minute,
	}

	return nil
}

func (td *timeDocument) toTime() *availability.Time {
	if td == nil {
		return nil
	}

	result := availability.Time(*td)

	return &result
}

func (doc *document) toParams() (*availability.ParamsNewSpace, error) {
	schedule := make(availability.WeeklySchedule, len(doc.OpeningTimes))

	for key, openingTimes := range doc.OpeningTimes {
		day, errDay := availability.ParseWeekday(key)
		if errDay != nil {
			return nil,
				fmt.Errorf("opening times key %q: %w", key, errDay)
		}

		if _, duplicate := schedule[day]; duplicate {
			return nil,
				fmt.Errorf("opening times for %s defined twice", day)
		}

		schedule[day] = availability.OpeningTimes{
			Open:  openingTimes.Open.toTime(),
			Close: openingTimes.Close.toTime(),
		}
	}

	return &availability.ParamsNewSpace{
			OpeningTimes:  schedule,
			TimeZone:      doc.TimeZone,
			MinimumNotice: doc.MinimumNotice,
		},
		nil
}

// Decode reads one space document. Unknown keys are rejected.
func Decode(r io.Reader) (*availability.Space, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc document

	if errDecode := decoder.Decode(&doc); errDecode != nil {
		if errDecode == io.EOF {
			return nil,
				fmt.Errorf("decode space: empty document")
		}

		return nil,
			fmt.Errorf("decode space: %w", errDecode)
	}

	params, errParams := doc.toParams()
	if errParams != nil {
		return nil,
			fmt.Errorf("decode space: %w", errParams)
	}

	return availability.NewSpace(params)
}

func Load(path string) (*availability.Space, error) {
	f, errOpen := os.Open(path)
	if errOpen != nil {
		return nil,
			fmt.Errorf("open space file: %w", errOpen)
	}
	defer f.Close()

	space, errDecode := Decode(f)
	if errDecode != nil {
		return nil,
			fmt.Errorf("%s: %w", path, errDecode)
	}

	return space,
		nil
}
