package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// FoodEngine reports on the mess. Grain: one row per food order.
type FoodEngine struct {
	db *sql.DB
}

func NewFoodEngine(db *sql.DB) *FoodEngine {
	return &FoodEngine{db: db}
}

func (e *FoodEngine) Run(ctx context.Context, code report.Code, filter timerange.Filter) (*report.Dataset, error) {
	if err := owns("food_service", code,
		report.FoodDailySummary, report.FoodWeeklySummary, report.FoodMonthlySummary); err != nil {
		return nil, err
	}

	from, to := timerange.Bounds(filter)

	query := `
		SELECT
			o.order_date,
			g.full_name,
			r.room_number,
			o.items, o.quantity, o.amount, o.delivered
		FROM food_orders o
		JOIN guests g ON g.guest_id = o.guest_id AND g.is_active = TRUE
		LEFT JOIN rooms r ON r.room_id = g.room_id AND r.is_active = TRUE
		WHERE o.order_date::date BETWEEN $1 AND $2
		ORDER BY o.order_date
	`

	rows, err := e.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("food query failed: %w", err)
	}
	defer closeRows(rows)

	ds := &report.Dataset{
		Columns: []string{"Order Date", "Guest", "Room", "Items", "Quantity", "Amount", "Delivered"},
	}

	var totalAmount float64
	for rows.Next() {
		var guest, items string
		var orderDate sql.NullTime
		var roomNumber sql.NullString
		var quantity int
		var amount sql.NullFloat64
		var delivered bool

		if err := rows.Scan(&orderDate, &guest, &roomNumber, &items, &quantity, &amount, &delivered); err != nil {
			return nil, fmt.Errorf("food scan failed: %w", err)
		}

		ds.Rows = append(ds.Rows, report.Row{
			"Order Date": nullTime(orderDate),
			"Guest":      guest,
			"Room":       nullString(roomNumber),
			"Items":      items,
			"Quantity":   quantity,
			"Amount":     nullFloat(amount),
			"Delivered":  delivered,
		})
		totalAmount += amount.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("food rows failed: %w", err)
	}

	ds.Summary = []report.SummaryItem{
		{Label: "Total Orders", Value: len(ds.Rows)},
		{Label: "Total Amount", Value: totalAmount},
	}

	return ds, nil
}
