package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TudorHulban/availability"
	"github.com/TudorHulban/availability/internal/spacefile"
)

type calendarFlags struct {
	spaceFile string
	now       string
	days      int
	intervals bool
}

func newCalendarCmd() *cobra.Command {
	var flags calendarFlags

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the availability calendar of a space document",
		Example: "  availability calendar --space space.yaml --days 7\n" +
			"  availability calendar --space space.json --now 2020-09-07T15:22:00Z --intervals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			return runCalendar(cmd, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.spaceFile, "space", "", "space document, YAML or JSON")
	cmd.Flags().IntVar(&flags.days, "days", 7, "number of days, starting today")
	cmd.Flags().StringVar(&flags.now, "now", "", "RFC3339 instant used as now (default current time)")
	cmd.Flags().BoolVar(&flags.intervals, "intervals", false, "print open windows as absolute intervals")
	_ = cmd.MarkFlagRequired("space")

	return cmd
}

func runCalendar(cmd *cobra.Command, flags *calendarFlags) error {
	now := time.Now()

	if flags.now != "" {
		parsed, errParse := time.Parse(time.RFC3339, flags.now)
		if errParse != nil {
			return fmt.Errorf("--now: %w", errParse)
		}

		now = parsed
	}

	space, errLoad := spacefile.Load(flags.spaceFile)
	if errLoad != nil {
		return errLoad
	}

	engine, errEngine := availability.NewDefaultEngine(&logger)
	if errEngine != nil {
		return fmt.Errorf("initialize engine: %w", errEngine)
	}

	params := availability.ParamsFetchAvailability{
		Space:        space,
		NumberOfDays: flags.days,
		Now:          now,
	}

	var result any

	if flags.intervals {
		intervals, errFetch := engine.FetchIntervals(&params)
		if errFetch != nil {
			return fmt.Errorf("fetch intervals: %w", errFetch)
		}

		result = intervals
	} else {
		calendar, errFetch := engine.FetchAvailability(&params)
		if errFetch != nil {
			return fmt.Errorf("fetch availability: %w", errFetch)
		}

		result = calendar
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}
