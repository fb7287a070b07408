package entity

import (
	"time"
)

// BuildingSummary holds the per-building scalar statistics for one run.
type BuildingSummary struct {
	BuildingID      string    `json:"building_id"`
	TotalKwh        float64   `json:"total_kwh"`
	MeanKwh         float64   `json:"mean_kwh"`
	MinKwh          float64   `json:"min_kwh"`
	AverageDailyKwh float64   `json:"average_daily_kwh"`
	PeakKwh         float64   `json:"peak_kwh"`
	PeakTimestamp   time.Time `json:"peak_timestamp"`
}

// CampusSummary holds the campus-wide statistics for one run.
type CampusSummary struct {
	TotalKwh     float64         `json:"total_kwh"`
	Highest      BuildingSummary `json:"highest"`
	Lowest       BuildingSummary `json:"lowest"`
	PeakReading  MeterReading    `json:"peak_reading"`
	AvgDailyKwh  float64         `json:"avg_daily_kwh"`
	AvgWeeklyKwh float64         `json:"avg_weekly_kwh"`
}
