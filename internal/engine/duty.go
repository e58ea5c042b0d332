package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// DutyEngine reports on driver rosters. Grain: one row per duty per day.
type DutyEngine struct {
	db *sql.DB
}

func NewDutyEngine(db *sql.DB) *DutyEngine {
	return &DutyEngine{db: db}
}

func (e *DutyEngine) Run(ctx context.Context, code report.Code, filter timerange.Filter) (*report.Dataset, error) {
	if err := owns("driver_duty", code,
		report.DriverDutyDailySummary, report.DriverDutyWeeklySummary, report.DriverDutyMonthlySummary); err != nil {
		return nil, err
	}

	from, to := timerange.Bounds(filter)

	query := `
		SELECT
			d.full_name, d.license_no,
			du.duty_date, du.shift,
			v.reg_no,
			du.hours_worked
		FROM driver_duties du
		JOIN drivers d ON d.driver_id = du.driver_id AND d.is_active = TRUE
		LEFT JOIN vehicles v ON v.vehicle_id = du.vehicle_id AND v.is_active = TRUE
		WHERE du.duty_date::date BETWEEN $1 AND $2
		ORDER BY du.duty_date, d.full_name
	`

	rows, err := e.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("duty query failed: %w", err)
	}
	defer closeRows(rows)

	ds := &report.Dataset{
		Columns: []string{"Driver", "License No", "Duty Date", "Shift", "Vehicle", "Hours"},
	}

	var totalHours float64
	for rows.Next() {
		var driver, licenseNo, shift string
		var dutyDate sql.NullTime
		var regNo sql.NullString
		var hours sql.NullFloat64

		if err := rows.Scan(&driver, &licenseNo, &dutyDate, &shift, &regNo, &hours); err != nil {
			return nil, fmt.Errorf("duty scan failed: %w", err)
		}

		ds.Rows = append(ds.Rows, report.Row{
			"Driver":     driver,
			"License No": licenseNo,
			"Duty Date":  nullTime(dutyDate),
			"Shift":      shift,
			"Vehicle":    nullString(regNo),
			"Hours":      nullFloat(hours),
		})
		totalHours += hours.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("duty rows failed: %w", err)
	}

	ds.Summary = []report.SummaryItem{
		{Label: "Total Duties", Value: len(ds.Rows)},
		{Label: "Total Hours", Value: totalHours},
	}

	return ds, nil
}
