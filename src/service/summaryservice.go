package service

import (
	"fmt"
	"sort"
	"strings"

	"campus/energy/entity"
)

type SummaryServiceImpl struct{}

// BuildingSummaries computes per-building scalar statistics from the
// merged dataset. Average daily consumption divides the total by the
// number of calendar days the building actually reported.
func (s *SummaryServiceImpl) BuildingSummaries(ds entity.CombinedDataset, daily []entity.DailyAggregate) []entity.BuildingSummary {
	type acc struct {
		total float64
		count int
		min   float64
		peak  entity.MeterReading
		days  int
	}
	byBuilding := make(map[string]*acc)
	for _, r := range ds {
		b := byBuilding[r.BuildingID]
		if b == nil {
			b = &acc{min: r.ConsumptionKwh, peak: r}
			byBuilding[r.BuildingID] = b
		}
		b.total += r.ConsumptionKwh
		b.count++
		if r.ConsumptionKwh < b.min {
			b.min = r.ConsumptionKwh
		}
		// strict comparison on time-sorted data keeps the earliest peak
		if r.ConsumptionKwh > b.peak.ConsumptionKwh {
			b.peak = r
		}
	}
	for _, d := range daily {
		if b := byBuilding[d.BuildingID]; b != nil {
			b.days++
		}
	}

	out := make([]entity.BuildingSummary, 0, len(byBuilding))
	for id, b := range byBuilding {
		out = append(out, entity.BuildingSummary{
			BuildingID:      id,
			TotalKwh:        b.total,
			MeanKwh:         b.total / float64(b.count),
			MinKwh:          b.min,
			AverageDailyKwh: b.total / float64(b.days),
			PeakKwh:         b.peak.ConsumptionKwh,
			PeakTimestamp:   b.peak.Timestamp,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BuildingID < out[j].BuildingID })
	return out
}

// Campus computes the campus-wide statistics.
func (s *SummaryServiceImpl) Campus(
	summaries []entity.BuildingSummary,
	ds entity.CombinedDataset,
	daily []entity.DailyAggregate,
	weekly []entity.WeeklyAggregate,
) entity.CampusSummary {
	var campus entity.CampusSummary
	if len(summaries) == 0 {
		return campus
	}

	campus.Highest = summaries[0]
	campus.Lowest = summaries[0]
	for _, b := range summaries {
		campus.TotalKwh += b.TotalKwh
		if b.TotalKwh > campus.Highest.TotalKwh {
			campus.Highest = b
		}
		if b.TotalKwh < campus.Lowest.TotalKwh {
			campus.Lowest = b
		}
	}

	campus.PeakReading = ds[0]
	for _, r := range ds {
		if r.ConsumptionKwh > campus.PeakReading.ConsumptionKwh {
			campus.PeakReading = r
		}
	}

	var dailyTotal float64
	for _, d := range daily {
		dailyTotal += d.TotalKwh
	}
	if len(daily) > 0 {
		campus.AvgDailyKwh = dailyTotal / float64(len(daily))
	}

	var weeklyTotal float64
	for _, w := range weekly {
		weeklyTotal += w.TotalKwh
	}
	if len(weekly) > 0 {
		campus.AvgWeeklyKwh = weeklyTotal / float64(len(weekly))
	}
	return campus
}

// RenderReport formats the free-text campus summary.
func (s *SummaryServiceImpl) RenderReport(campus entity.CampusSummary, summaries []entity.BuildingSummary) string {
	lines := []string{
		"Campus Energy Use Summary",
		"--------------------------------------------------",
		fmt.Sprintf("Total campus consumption (period): %.2f kWh", campus.TotalKwh),
		"",
		"Per-building totals:",
	}
	for _, b := range summaries {
		lines = append(lines, fmt.Sprintf("  %s: %.2f kWh", b.BuildingID, b.TotalKwh))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Highest consuming building: %s (%.2f kWh)", campus.Highest.BuildingID, campus.Highest.TotalKwh),
		fmt.Sprintf("Lowest consuming building: %s (%.2f kWh)", campus.Lowest.BuildingID, campus.Lowest.TotalKwh),
		fmt.Sprintf("Peak load timestamp: %s (%.2f kWh)",
			campus.PeakReading.Timestamp.Format("2006-01-02 15:04:05"), campus.PeakReading.ConsumptionKwh),
		"",
		fmt.Sprintf("Average daily load (all buildings combined): %.2f kWh", campus.AvgDailyKwh),
		fmt.Sprintf("Average weekly load (all buildings combined): %.2f kWh", campus.AvgWeeklyKwh),
	)
	return strings.Join(lines, "\n") + "\n"
}
