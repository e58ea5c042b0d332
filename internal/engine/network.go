package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// NetworkEngine reports on connectivity. Grain: one row per network
// allocation.
type NetworkEngine struct {
	db *sql.DB
}

func NewNetworkEngine(db *sql.DB) *NetworkEngine {
	return &NetworkEngine{db: db}
}

func (e *NetworkEngine) Run(ctx context.Context, code report.Code, filter timerange.Filter) (*report.Dataset, error) {
	if err := owns("network", code,
		report.NetworkDailySummary, report.NetworkWeeklySummary, report.NetworkMonthlySummary); err != nil {
		return nil, err
	}

	from, to := timerange.Bounds(filter)

	query := `
		SELECT
			n.ip_address, n.bandwidth_mbps,
			r.room_number,
			n.allocated_on, n.released_on, n.status
		FROM network_allocations n
		JOIN rooms r ON r.room_id = n.room_id AND r.is_active = TRUE
		WHERE n.allocated_on::date BETWEEN $1 AND $2
		ORDER BY n.allocated_on
	`

	rows, err := e.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("network query failed: %w", err)
	}
	defer closeRows(rows)

	ds := &report.Dataset{
		Columns: []string{"IP Address", "Bandwidth (Mbps)", "Room", "Allocated On", "Released On", "Status"},
	}

	active := 0
	for rows.Next() {
		var ip, roomNumber, status string
		var bandwidth int
		var allocatedOn sql.NullTime
		var releasedOn sql.NullTime

		if err := rows.Scan(&ip, &bandwidth, &roomNumber, &allocatedOn, &releasedOn, &status); err != nil {
			return nil, fmt.Errorf("network scan failed: %w", err)
		}

		if status == "active" {
			active++
		}

		ds.Rows = append(ds.Rows, report.Row{
			"IP Address":       ip,
			"Bandwidth (Mbps)": bandwidth,
			"Room":             roomNumber,
			"Allocated On":     nullTime(allocatedOn),
			"Released On":      nullTime(releasedOn),
			"Status":           status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("network rows failed: %w", err)
	}

	ds.Summary = []report.SummaryItem{
		{Label: "Total Allocations", Value: len(ds.Rows)},
		{Label: "Active Allocations", Value: active},
	}

	return ds, nil
}
