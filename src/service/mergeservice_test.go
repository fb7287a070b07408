package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/energy/entity"
	"campus/energy/src/service"
)

func reading(b string, ts time.Time, kwh float64) entity.MeterReading {
	return entity.MeterReading{BuildingID: b, Timestamp: ts, ConsumptionKwh: kwh}
}

func TestMergeSortsByTimestampThenBuilding(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	files := []service.LoadedFile{
		{
			Building: entity.Building{ID: "hostel"},
			Readings: []entity.MeterReading{
				reading("hostel", t0.Add(time.Hour), 4),
				reading("hostel", t0, 1),
			},
			Rejected: []entity.RejectedRow{{File: "hostel.csv", Line: 3, Reason: "negative consumption"}},
		},
		{
			Building: entity.Building{ID: "admin_block"},
			Readings: []entity.MeterReading{
				reading("admin_block", t0.Add(time.Hour), 3),
				reading("admin_block", t0, 2),
			},
		},
	}

	ds, kept, dropped := service.IMergeService.Merge(files)
	assert.Equal(t, 4, kept)
	assert.Equal(t, 1, dropped)
	require.Len(t, ds, 4)

	// timestamp first, building id breaks ties
	assert.Equal(t, "admin_block", ds[0].BuildingID)
	assert.Equal(t, "hostel", ds[1].BuildingID)
	assert.True(t, ds[0].Timestamp.Equal(t0))
	assert.Equal(t, "admin_block", ds[2].BuildingID)
	assert.Equal(t, "hostel", ds[3].BuildingID)
}

func TestMergeEmptyInput(t *testing.T) {
	ds, kept, dropped := service.IMergeService.Merge(nil)
	assert.Empty(t, ds)
	assert.Zero(t, kept)
	assert.Zero(t, dropped)
}
