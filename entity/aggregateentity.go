package entity

import (
	"time"
)

// DailyAggregate is the consumption of one building over one UTC calendar day.
type DailyAggregate struct {
	BuildingID string    `json:"building_id"`
	Day        time.Time `json:"day"`
	TotalKwh   float64   `json:"total_kwh"`
	MeanKwh    float64   `json:"mean_kwh"`
	Count      int       `json:"count"`
}

// WeeklyAggregate is the consumption of one building over one ISO week.
// WeekStart is the Monday of the week at 00:00 UTC.
type WeeklyAggregate struct {
	BuildingID string    `json:"building_id"`
	WeekStart  time.Time `json:"week_start"`
	TotalKwh   float64   `json:"total_kwh"`
	MeanKwh    float64   `json:"mean_kwh"`
	Count      int       `json:"count"`
}

// PeakReading is the single highest-consumption reading of a building
// within one day. Ties at the maximum resolve to the earliest timestamp.
type PeakReading struct {
	BuildingID string       `json:"building_id"`
	Day        time.Time    `json:"day"`
	Reading    MeterReading `json:"reading"`
}
