package timerange

import "time"

// Filter is the closed set of window filters an engine can receive.
// It is validated once at the orchestration boundary; engines only
// ever see one of the two concrete shapes below.
type Filter interface {
	isFilter()
}

// DateRangeFilter restricts a query to an inclusive date window.
type DateRangeFilter struct {
	Range DateRange
}

// NoFilter asks an engine for an all-time summary. Engines substitute
// their own fallback bounds.
type NoFilter struct{}

func (DateRangeFilter) isFilter() {}
func (NoFilter) isFilter()        {}

// fallbackFrom is the lower bound engines substitute for all-time
// queries.
var fallbackFrom = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Bounds returns the inclusive query bounds for a filter. NoFilter
// (and a nil filter) yields 1900-01-01 through now.
func Bounds(f Filter) (from, to time.Time) {
	switch v := f.(type) {
	case DateRangeFilter:
		return v.Range.From, v.Range.To
	default:
		return fallbackFrom, time.Now()
	}
}
