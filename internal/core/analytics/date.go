package analytics

import (
	"fmt"
	"time"
)

// Periods accepted by GetDateRange.
var Periods = []string{
	"today", "yesterday", "this_week", "last_week", "this_month", "last_month",
	"last_7_days", "last_30_days", "last_90_days",
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// GetDateRange returns the date range a named period covers at now.
func GetDateRange(period string, now time.Time) (DateRange, error) {
	var start, end time.Time

	switch period {
	case "today":
		start, end = startOfDay(now), endOfDay(now)

	case "yesterday":
		yesterday := now.AddDate(0, 0, -1)
		start, end = startOfDay(yesterday), endOfDay(yesterday)

	case "this_week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = startOfDay(now.AddDate(0, 0, -weekday+1))
		end = now

	case "last_week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = startOfDay(now.AddDate(0, 0, -weekday-6))
		end = endOfDay(now.AddDate(0, 0, -weekday))

	case "this_month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now

	case "last_month":
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Add(-time.Nanosecond)

	case "last_7_days":
		start, end = startOfDay(now.AddDate(0, 0, -6)), now

	case "last_30_days":
		start, end = startOfDay(now.AddDate(0, 0, -29)), now

	case "last_90_days":
		start, end = startOfDay(now.AddDate(0, 0, -89)), now

	default:
		return DateRange{}, fmt.Errorf("unknown period %q", period)
	}

	return DateRange{Start: start, End: end}, nil
}

// GetDailyRanges returns date ranges for each day in a period
func GetDailyRanges(r DateRange) []DateRange {
	ranges := []DateRange{}
	current := startOfDay(r.Start)

	for !current.After(r.End) {
		dayEnd := endOfDay(current)
		if dayEnd.After(r.End) {
			dayEnd = r.End
		}
		dayStart := current
		if dayStart.Before(r.Start) {
			dayStart = r.Start
		}

		ranges = append(ranges, DateRange{Start: dayStart, End: dayEnd})
		current = current.AddDate(0, 0, 1)
	}

	return ranges
}
