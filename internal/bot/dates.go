package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// errTomorrow marks the one date the report refuses to answer.
var errTomorrow = errors.New("tomorrow")

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// resolveDate turns a user-supplied date word into a formatted date.
// Accepts "today", "yesterday", weekday names (resolving to the most
// recent such weekday, possibly today) and explicit dates in the given
// layout. "tomorrow" returns errTomorrow.
func resolveDate(input string, now time.Time, layout string) (string, error) {
	switch lowered := strings.ToLower(strings.TrimSpace(input)); lowered {
	case "":
		return "", fmt.Errorf("%w: empty date", ErrInvalidInput)
	case "today":
		return now.Format(layout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(layout), nil
	case "tomorrow":
		return "", errTomorrow
	default:
		if target, ok := weekdays[lowered]; ok {
			delta := int(target) - int(now.Weekday())
			if delta > 0 {
				delta -= 7
			}
			return now.AddDate(0, 0, delta).Format(layout), nil
		}
		parsed, err := time.Parse(layout, strings.TrimSpace(input))
		if err != nil {
			return "", fmt.Errorf("%w: unrecognized date %q", ErrInvalidInput, input)
		}
		return parsed.Format(layout), nil
	}
}

// nextDay returns the day after the given formatted date.
func nextDay(date string, layout string) (string, error) {
	parsed, err := time.Parse(layout, date)
	if err != nil {
		return "", fmt.Errorf("%w: unrecognized date %q", ErrInvalidInput, date)
	}
	return parsed.AddDate(0, 0, 1).Format(layout), nil
}
