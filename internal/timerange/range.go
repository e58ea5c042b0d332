// Package timerange normalizes the range vocabulary accepted at the API
// boundary and resolves it into concrete inclusive date windows.
package timerange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type RangeType string

const (
	Daily   RangeType = "daily"
	Weekly  RangeType = "weekly"
	Monthly RangeType = "monthly"
	Custom  RangeType = "custom"
)

var (
	ErrUnsupportedRangeType = errors.New("unsupported range type")
	ErrMissingCustomRange   = errors.New("custom range requires both start and end dates")
)

// DateRange is an inclusive calendar-date window. Both bounds are
// truncated to midnight in the location they were built with.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

var synonyms = map[string]RangeType{
	"today":        Daily,
	"daily":        Daily,
	"this week":    Weekly,
	"weekly":       Weekly,
	"this month":   Monthly,
	"last month":   Monthly,
	"monthly":      Monthly,
	"custom range": Custom,
	"custom":       Custom,
}

// Normalize maps the loose boundary vocabulary (Today, This Week,
// Last Month, ...) onto a canonical RangeType. Matching is
// case-insensitive.
func Normalize(input string) (RangeType, error) {
	rt, ok := synonyms[strings.ToLower(strings.TrimSpace(input))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRangeType, input)
	}
	return rt, nil
}

// Resolve computes the concrete window for a canonical range type,
// relative to today in local time.
//
//   - Daily: from = to = today.
//   - Weekly: Sunday through Saturday of the week containing today.
//   - Monthly: first through last calendar day of the current month.
//   - Custom: requires both bounds; passed through unchanged, including
//     windows where start > end.
func Resolve(rt RangeType, start, end *time.Time) (DateRange, error) {
	return resolveAt(rt, start, end, time.Now())
}

func resolveAt(rt RangeType, start, end *time.Time, now time.Time) (DateRange, error) {
	today := truncate(now)

	switch rt {
	case Daily:
		return DateRange{From: today, To: today}, nil
	case Weekly:
		// time.Weekday has Sunday == 0, so this lands on the most
		// recent Sunday on or before today.
		from := today.AddDate(0, 0, -int(today.Weekday()))
		return DateRange{From: from, To: from.AddDate(0, 0, 6)}, nil
	case Monthly:
		from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		to := from.AddDate(0, 1, -1)
		return DateRange{From: from, To: to}, nil
	case Custom:
		if start == nil || end == nil {
			return DateRange{}, ErrMissingCustomRange
		}
		return DateRange{From: truncate(*start), To: truncate(*end)}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: %q", ErrUnsupportedRangeType, rt)
	}
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
