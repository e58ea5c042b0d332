package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// VehicleEngine reports on vehicle usage. Grain: one row per trip.
type VehicleEngine struct {
	db *sql.DB
}

func NewVehicleEngine(db *sql.DB) *VehicleEngine {
	return &VehicleEngine{db: db}
}

func (e *VehicleEngine) Run(ctx context.Context, code report.Code, filter timerange.Filter) (*report.Dataset, error) {
	if err := owns("vehicle_driver", code,
		report.VehicleDailySummary, report.VehicleWeeklySummary, report.VehicleMonthlySummary); err != nil {
		return nil, err
	}

	from, to := timerange.Bounds(filter)

	query := `
		SELECT
			v.reg_no, v.model,
			d.full_name,
			t.trip_date, t.origin, t.destination, t.distance_km
		FROM vehicle_trips t
		JOIN vehicles v ON v.vehicle_id = t.vehicle_id AND v.is_active = TRUE
		JOIN drivers d ON d.driver_id = t.driver_id AND d.is_active = TRUE
		WHERE t.trip_date::date BETWEEN $1 AND $2
		ORDER BY t.trip_date, v.reg_no
	`

	rows, err := e.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("vehicle query failed: %w", err)
	}
	defer closeRows(rows)

	ds := &report.Dataset{
		Columns: []string{"Vehicle", "Model", "Driver", "Trip Date", "Origin", "Destination", "Distance (km)"},
	}

	var totalKm float64
	for rows.Next() {
		var regNo, model, driver, origin, destination string
		var tripDate sql.NullTime
		var distanceKm sql.NullFloat64

		if err := rows.Scan(&regNo, &model, &driver, &tripDate, &origin, &destination, &distanceKm); err != nil {
			return nil, fmt.Errorf("vehicle scan failed: %w", err)
		}

		ds.Rows = append(ds.Rows, report.Row{
			"Vehicle":       regNo,
			"Model":         model,
			"Driver":        driver,
			"Trip Date":     nullTime(tripDate),
			"Origin":        origin,
			"Destination":   destination,
			"Distance (km)": nullFloat(distanceKm),
		})
		totalKm += distanceKm.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vehicle rows failed: %w", err)
	}

	ds.Summary = []report.SummaryItem{
		{Label: "Total Trips", Value: len(ds.Rows)},
		{Label: "Total Distance (km)", Value: totalKm},
	}

	return ds, nil
}
