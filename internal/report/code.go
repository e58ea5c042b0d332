// Package report defines the core reporting domain model: business
// sections, report codes, and the dataset shape produced by query
// engines and consumed by exporters.
package report

import (
	"fmt"

	"github.com/hostelops/reportgen/internal/timerange"
)

// Section is a business domain grouping. Each section owns exactly one
// query engine and one default exporter.
type Section string

const (
	SectionGuest       Section = "guest"
	SectionRoom        Section = "room"
	SectionVehicle     Section = "vehicle_driver"
	SectionDriverDuty  Section = "driver_duty"
	SectionFoodService Section = "food_service"
	SectionNetwork     Section = "network"
)

// Sections lists every known section in registry order.
func Sections() []Section {
	return []Section{
		SectionGuest,
		SectionRoom,
		SectionVehicle,
		SectionDriverDuty,
		SectionFoodService,
		SectionNetwork,
	}
}

// Code uniquely identifies one query shape within one section and
// cadence, e.g. GUEST_DAILY_SUMMARY.
type Code string

const (
	GuestDailySummary   Code = "GUEST_DAILY_SUMMARY"
	GuestWeeklySummary  Code = "GUEST_WEEKLY_SUMMARY"
	GuestMonthlySummary Code = "GUEST_MONTHLY_SUMMARY"

	RoomDailySummary   Code = "ROOM_DAILY_SUMMARY"
	RoomWeeklySummary  Code = "ROOM_WEEKLY_SUMMARY"
	RoomMonthlySummary Code = "ROOM_MONTHLY_SUMMARY"

	VehicleDailySummary   Code = "VEHICLE_DRIVER_DAILY_SUMMARY"
	VehicleWeeklySummary  Code = "VEHICLE_DRIVER_WEEKLY_SUMMARY"
	VehicleMonthlySummary Code = "VEHICLE_DRIVER_MONTHLY_SUMMARY"

	DriverDutyDailySummary   Code = "DRIVER_DUTY_DAILY_SUMMARY"
	DriverDutyWeeklySummary  Code = "DRIVER_DUTY_WEEKLY_SUMMARY"
	DriverDutyMonthlySummary Code = "DRIVER_DUTY_MONTHLY_SUMMARY"

	FoodDailySummary   Code = "FOOD_SERVICE_DAILY_SUMMARY"
	FoodWeeklySummary  Code = "FOOD_SERVICE_WEEKLY_SUMMARY"
	FoodMonthlySummary Code = "FOOD_SERVICE_MONTHLY_SUMMARY"

	NetworkDailySummary   Code = "NETWORK_DAILY_SUMMARY"
	NetworkWeeklySummary  Code = "NETWORK_WEEKLY_SUMMARY"
	NetworkMonthlySummary Code = "NETWORK_MONTHLY_SUMMARY"
)

var codesBySection = map[Section]map[timerange.RangeType]Code{
	SectionGuest: {
		timerange.Daily:   GuestDailySummary,
		timerange.Weekly:  GuestWeeklySummary,
		timerange.Monthly: GuestMonthlySummary,
		timerange.Custom:  GuestMonthlySummary,
	},
	SectionRoom: {
		timerange.Daily:   RoomDailySummary,
		timerange.Weekly:  RoomWeeklySummary,
		timerange.Monthly: RoomMonthlySummary,
		timerange.Custom:  RoomMonthlySummary,
	},
	SectionVehicle: {
		timerange.Daily:   VehicleDailySummary,
		timerange.Weekly:  VehicleWeeklySummary,
		timerange.Monthly: VehicleMonthlySummary,
		timerange.Custom:  VehicleMonthlySummary,
	},
	SectionDriverDuty: {
		timerange.Daily:   DriverDutyDailySummary,
		timerange.Weekly:  DriverDutyWeeklySummary,
		timerange.Monthly: DriverDutyMonthlySummary,
		timerange.Custom:  DriverDutyMonthlySummary,
	},
	SectionFoodService: {
		timerange.Daily:   FoodDailySummary,
		timerange.Weekly:  FoodWeeklySummary,
		timerange.Monthly: FoodMonthlySummary,
		timerange.Custom:  FoodMonthlySummary,
	},
	SectionNetwork: {
		timerange.Daily:   NetworkDailySummary,
		timerange.Weekly:  NetworkWeeklySummary,
		timerange.Monthly: NetworkMonthlySummary,
		timerange.Custom:  NetworkMonthlySummary,
	},
}

// ResolveCode maps a section and a canonical range type onto the
// concrete report code. Monthly and Custom collapse onto the monthly
// summary. The range type is re-validated here because resolvers may
// be called directly, before any normalization.
func ResolveCode(section Section, rt timerange.RangeType) (Code, error) {
	cadences, ok := codesBySection[section]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	code, ok := cadences[rt]
	if !ok {
		return "", fmt.Errorf("%w: %q", timerange.ErrUnsupportedRangeType, rt)
	}

	return code, nil
}

// ParseSection validates a raw section string from the boundary.
func ParseSection(raw string) (Section, error) {
	s := Section(raw)
	if _, ok := codesBySection[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, raw)
	}
	return s, nil
}
