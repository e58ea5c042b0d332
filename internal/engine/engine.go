// Package engine contains the per-section query engines. Each engine
// owns a fixed grain (the unit represented by one output row), runs
// read-only parameterized queries against the operational database,
// and is a closed switch over its own section's report codes.
package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// Engine executes the fixed query behind a report code over an
// inclusive date window.
type Engine interface {
	Run(ctx context.Context, code report.Code, filter timerange.Filter) (*report.Dataset, error)
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logrus.WithError(err).Warn("failed to close rows")
	}
}

// owns validates that an engine was handed one of its own codes.
func owns(engineName string, code report.Code, owned ...report.Code) error {
	for _, c := range owned {
		if code == c {
			return nil
		}
	}
	return &report.UnsupportedCodeError{Engine: engineName, Code: code}
}

func nullString(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullTime(v sql.NullTime) any {
	if !v.Valid {
		return nil
	}
	return v.Time
}

func nullFloat(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
