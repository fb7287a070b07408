package entity

import (
	"time"
)

// MeterReading is one validated hourly consumption measurement for one building.
type MeterReading struct {
	BuildingID     string    `json:"building_id"`
	Timestamp      time.Time `json:"timestamp"`
	ConsumptionKwh float64   `json:"consumption_kwh"`
}

// CombinedDataset is the validated, merged readings of all buildings,
// sorted by timestamp then building id.
type CombinedDataset []MeterReading
