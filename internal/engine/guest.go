package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// GuestEngine reports on guests. Grain: one row per checked-in guest
// whose check-in falls inside the window. Logically deleted guests and
// rooms are excluded.
type GuestEngine struct {
	db *sql.DB
}

func NewGuestEngine(db *sql.DB) *GuestEngine {
	return &GuestEngine{db: db}
}

func (e *GuestEngine) Run(ctx context.Context, code report.Code, filter timerange.Filter) (*report.Dataset, error) {
	if err := owns("guest", code,
		report.GuestDailySummary, report.GuestWeeklySummary, report.GuestMonthlySummary); err != nil {
		return nil, err
	}

	from, to := timerange.Bounds(filter)

	query := `
		SELECT
			g.full_name, g.cnic, g.phone,
			r.room_number,
			g.check_in_date, g.check_out_date
		FROM guests g
		JOIN rooms r ON r.room_id = g.room_id AND r.is_active = TRUE
		WHERE g.is_active = TRUE
			AND g.status = 'checked_in'
			AND g.check_in_date::date BETWEEN $1 AND $2
		ORDER BY g.check_in_date, g.full_name
	`

	rows, err := e.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("guest query failed: %w", err)
	}
	defer closeRows(rows)

	ds := &report.Dataset{
		Columns: []string{"Guest Name", "CNIC", "Phone", "Room", "Check In", "Check Out", "Stay Days"},
	}

	totalStayDays := 0
	for rows.Next() {
		var name, cnic, roomNumber string
		var phone sql.NullString
		var checkIn sql.NullTime
		var checkOut sql.NullTime

		if err := rows.Scan(&name, &cnic, &phone, &roomNumber, &checkIn, &checkOut); err != nil {
			return nil, fmt.Errorf("guest scan failed: %w", err)
		}

		row := report.Row{
			"Guest Name": name,
			"CNIC":       cnic,
			"Phone":      nullString(phone),
			"Room":       roomNumber,
			"Check In":   nullTime(checkIn),
			"Check Out":  nullTime(checkOut),
			"Stay Days":  nil,
		}

		if checkIn.Valid {
			stay := report.StayDays(checkIn.Time, timePtr(checkOut))
			row["Stay Days"] = stay
			totalStayDays += stay
		}

		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("guest rows failed: %w", err)
	}

	ds.Summary = []report.SummaryItem{
		{Label: "Total Guests", Value: len(ds.Rows)},
		{Label: "Total Guest-Days", Value: totalStayDays},
	}

	return ds, nil
}
