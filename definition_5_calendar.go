package availability

import (
	"fmt"
	"sort"
	"strings"
)

// AvailabilityCalendar maps local ISO dates to the remaining bookable window.
type AvailabilityCalendar map[string]OpeningTimes

// Dates returns the calendar keys in chronological order.
func (ac AvailabilityCalendar) Dates() []string {
	result := make([]string, 0, len(ac))

	for date := range ac {
		result = append(result, date)
	}

	sort.Strings(result)

	return result
}

func (ac AvailabilityCalendar) OpenDays() int {
	var result int

	for _, openingTimes := range ac {
		if !openingTimes.IsClosed() {
			result++
		}
	}

	return result
}

func (ac AvailabilityCalendar) String() string {
	var sb strings.Builder
	sb.WriteString("AvailabilityCalendar{\n")

	for _, date := range ac.Dates() {
		sb.WriteString(fmt.Sprintf("\t%s: %s,\n", date, ac[date]))
	}

	sb.WriteString("}")

	return sb.String()
}
