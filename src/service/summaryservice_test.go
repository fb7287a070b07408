package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/energy/src/service"
)

func TestBuildingSummariesAndCampus(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	ds := mergedDataset(
		reading("library", day1.Add(1*time.Hour), 2),
		reading("library", day1.Add(2*time.Hour), 6),
		reading("library", day2.Add(1*time.Hour), 4),
		reading("hostel", day1.Add(3*time.Hour), 20),
		reading("hostel", day1.Add(4*time.Hour), 20), // tied peak, later timestamp
	)

	daily := service.IAggregateService.Daily(ds)
	weekly := service.IAggregateService.Weekly(ds)
	summaries := service.ISummaryService.BuildingSummaries(ds, daily)
	require.Len(t, summaries, 2)

	hostel := summaries[0]
	assert.Equal(t, "hostel", hostel.BuildingID)
	assert.Equal(t, 40.0, hostel.TotalKwh)
	assert.Equal(t, 20.0, hostel.PeakKwh)
	assert.Equal(t, 3, hostel.PeakTimestamp.UTC().Hour(), "earliest tied peak wins")
	assert.Equal(t, 40.0, hostel.AverageDailyKwh, "one reporting day")

	library := summaries[1]
	assert.Equal(t, 12.0, library.TotalKwh)
	assert.Equal(t, 4.0, library.MeanKwh)
	assert.Equal(t, 2.0, library.MinKwh)
	assert.Equal(t, 6.0, library.AverageDailyKwh, "12 kWh over two reporting days")
	assert.Equal(t, 6.0, library.PeakKwh)

	campus := service.ISummaryService.Campus(summaries, ds, daily, weekly)
	assert.Equal(t, 52.0, campus.TotalKwh)
	assert.Equal(t, "hostel", campus.Highest.BuildingID)
	assert.Equal(t, "library", campus.Lowest.BuildingID)
	assert.Equal(t, 20.0, campus.PeakReading.ConsumptionKwh)
}

func TestRenderReportContainsRequiredLines(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	ds := mergedDataset(
		reading("library", day.Add(1*time.Hour), 2),
		reading("hostel", day.Add(2*time.Hour), 10),
	)
	daily := service.IAggregateService.Daily(ds)
	weekly := service.IAggregateService.Weekly(ds)
	summaries := service.ISummaryService.BuildingSummaries(ds, daily)
	campus := service.ISummaryService.Campus(summaries, ds, daily, weekly)

	report := service.ISummaryService.RenderReport(campus, summaries)
	assert.Contains(t, report, "Total campus consumption (period): 12.00 kWh")
	assert.Contains(t, report, "hostel: 10.00 kWh")
	assert.Contains(t, report, "library: 2.00 kWh")
	assert.Contains(t, report, "Highest consuming building: hostel (10.00 kWh)")
	assert.Contains(t, report, "Lowest consuming building: library (2.00 kWh)")
	assert.Contains(t, report, "Peak load timestamp: 2025-03-10 02:00:00 (10.00 kWh)")
}
