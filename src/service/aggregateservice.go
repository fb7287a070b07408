package service

import (
	"sort"
	"time"

	"campus/energy/entity"
)

type AggregateServiceImpl struct{}

type bucketKey struct {
	building string
	period   time.Time
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStartOf returns the Monday of the ISO week containing ts, at
// 00:00 UTC.
func WeekStartOf(ts time.Time) time.Time {
	day := DayOf(ts)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0 .. Sunday = 6
	return day.AddDate(0, 0, -offset)
}

// Daily buckets the dataset by building and UTC calendar day.
// Sums accumulate in dataset order, so identical input produces
// identical output bytes.
func (a *AggregateServiceImpl) Daily(ds entity.CombinedDataset) []entity.DailyAggregate {
	type acc struct {
		total float64
		count int
	}
	buckets := make(map[bucketKey]*acc)
	for _, r := range ds {
		k := bucketKey{r.BuildingID, DayOf(r.Timestamp)}
		b := buckets[k]
		if b == nil {
			b = &acc{}
			buckets[k] = b
		}
		b.total += r.ConsumptionKwh
		b.count++
	}

	out := make([]entity.DailyAggregate, 0, len(buckets))
	for k, b := range buckets {
		out = append(out, entity.DailyAggregate{
			BuildingID: k.building,
			Day:        k.period,
			TotalKwh:   b.total,
			MeanKwh:    b.total / float64(b.count),
			Count:      b.count,
		})
	}
	sortByBuildingThenPeriod(out, func(d entity.DailyAggregate) (string, time.Time) { return d.BuildingID, d.Day })
	return out
}

// Weekly buckets the dataset by building and ISO week.
func (a *AggregateServiceImpl) Weekly(ds entity.CombinedDataset) []entity.WeeklyAggregate {
	type acc struct {
		total float64
		count int
	}
	buckets := make(map[bucketKey]*acc)
	for _, r := range ds {
		k := bucketKey{r.BuildingID, WeekStartOf(r.Timestamp)}
		b := buckets[k]
		if b == nil {
			b = &acc{}
			buckets[k] = b
		}
		b.total += r.ConsumptionKwh
		b.count++
	}

	out := make([]entity.WeeklyAggregate, 0, len(buckets))
	for k, b := range buckets {
		out = append(out, entity.WeeklyAggregate{
			BuildingID: k.building,
			WeekStart:  k.period,
			TotalKwh:   b.total,
			MeanKwh:    b.total / float64(b.count),
			Count:      b.count,
		})
	}
	sortByBuildingThenPeriod(out, func(w entity.WeeklyAggregate) (string, time.Time) { return w.BuildingID, w.WeekStart })
	return out
}

// Peaks extracts the highest-consumption reading per building and day.
// The dataset is already time-sorted, so a strict comparison keeps the
// earliest reading on ties.
func (a *AggregateServiceImpl) Peaks(ds entity.CombinedDataset) []entity.PeakReading {
	best := make(map[bucketKey]entity.MeterReading)
	for _, r := range ds {
		k := bucketKey{r.BuildingID, DayOf(r.Timestamp)}
		cur, ok := best[k]
		if !ok || r.ConsumptionKwh > cur.ConsumptionKwh {
			best[k] = r
		}
	}

	out := make([]entity.PeakReading, 0, len(best))
	for k, r := range best {
		out = append(out, entity.PeakReading{BuildingID: k.building, Day: k.period, Reading: r})
	}
	sortByBuildingThenPeriod(out, func(p entity.PeakReading) (string, time.Time) { return p.BuildingID, p.Day })
	return out
}

func sortByBuildingThenPeriod[T any](items []T, key func(T) (string, time.Time)) {
	sort.Slice(items, func(i, j int) bool {
		bi, pi := key(items[i])
		bj, pj := key(items[j])
		if bi != bj {
			return bi < bj
		}
		return pi.Before(pj)
	})
}
