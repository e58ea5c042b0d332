package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// RoomEngine reports on occupancy. Grain: one row per room-stay
// overlapping the window.
type RoomEngine struct {
	db *sql.DB
}

func NewRoomEngine(db *sql.DB) *RoomEngine {
	return &RoomEngine{db: db}
}

func (e *RoomEngine) Run(ctx context.Context, code report.Code, filter timerange.Filter) (*report.Dataset, error) {
	if err := owns("room", code,
		report.RoomDailySummary, report.RoomWeeklySummary, report.RoomMonthlySummary); err != nil {
		return nil, err
	}

	from, to := timerange.Bounds(filter)

	// Overlap: the stay began on or before the window end and has not
	// ended before the window start.
	query := `
		SELECT
			r.room_number, r.room_type, r.capacity,
			g.full_name,
			g.check_in_date, g.check_out_date
		FROM guests g
		JOIN rooms r ON r.room_id = g.room_id AND r.is_active = TRUE
		WHERE g.is_active = TRUE
			AND g.check_in_date::date <= $2
			AND COALESCE(g.check_out_date::date, CURRENT_DATE) >= $1
		ORDER BY r.room_number, g.check_in_date
	`

	rows, err := e.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("room query failed: %w", err)
	}
	defer closeRows(rows)

	ds := &report.Dataset{
		Columns: []string{"Room", "Type", "Capacity", "Occupant", "Entry", "Exit", "Stay Days"},
	}

	occupied := make(map[string]struct{})
	for rows.Next() {
		var roomNumber, roomType, occupant string
		var capacity int
		var entry sql.NullTime
		var exit sql.NullTime

		if err := rows.Scan(&roomNumber, &roomType, &capacity, &occupant, &entry, &exit); err != nil {
			return nil, fmt.Errorf("room scan failed: %w", err)
		}

		row := report.Row{
			"Room":      roomNumber,
			"Type":      roomType,
			"Capacity":  capacity,
			"Occupant":  occupant,
			"Entry":     nullTime(entry),
			"Exit":      nullTime(exit),
			"Stay Days": nil,
		}
		if entry.Valid {
			row["Stay Days"] = report.StayDays(entry.Time, timePtr(exit))
		}

		occupied[roomNumber] = struct{}{}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("room rows failed: %w", err)
	}

	ds.Summary = []report.SummaryItem{
		{Label: "Total Stays", Value: len(ds.Rows)},
		{Label: "Rooms Occupied", Value: len(occupied)},
	}

	return ds, nil
}
