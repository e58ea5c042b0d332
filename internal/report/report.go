package report

import (
	"math"
	"time"
)

// Row is one output row keyed by column name. Rows are opaque to the
// pipeline; only exporters interpret the values.
type Row map[string]any

// SummaryItem is a single aggregate rendered in an exporter's summary
// block, e.g. "Total Guests" = 42.
type SummaryItem struct {
	Label string
	Value any
}

// Dataset is the product of a query engine: column order, rows, and
// whatever summary aggregates the domain defines.
type Dataset struct {
	Columns []string
	Rows    []Row
	Summary []SummaryItem
}

// Meta carries the presentation metadata handed to exporters alongside
// the dataset.
type Meta struct {
	Title    string
	Section  Section
	Code     Code
	From     time.Time
	To       time.Time
	Language string
}

// SingleDay reports whether the window covers exactly one calendar day.
func (m Meta) SingleDay() bool {
	return m.From.Equal(m.To)
}

// PeriodLabel renders the window the way report headers show it,
// e.g. "01-Jan-2025 – 31-Jan-2025".
func (m Meta) PeriodLabel() string {
	const layout = "02-Jan-2006"
	if m.SingleDay() {
		return m.From.Format(layout)
	}
	return m.From.Format(layout) + " – " + m.To.Format(layout)
}

// StayDays computes the billed length of a stay in whole days. Stays
// shorter than a day count as one; an open-ended stay is measured
// against now.
func StayDays(entry time.Time, exit *time.Time) int {
	until := time.Now()
	if exit != nil {
		until = *exit
	}
	days := math.Ceil(until.Sub(entry).Hours() / 24)
	if days < 1 {
		return 1
	}
	return int(days)
}
