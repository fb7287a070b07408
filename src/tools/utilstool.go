package tools

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"time"

	uuid "github.com/satori/go.uuid"
)

func NewUuid() string {
	id := uuid.NewV4()
	return id.String()
}

// Normal hourly building CSV
func GenerateBuildingCSVNormal(fileName string, start time.Time, days int) error {
	return generateBuildingCSV(fileName, start, days, false)
}

// Malformed hourly building CSV, salted with rows the loader must reject
func GenerateBuildingCSVMalformed(fileName string, start time.Time, days int) error {
	return generateBuildingCSV(fileName, start, days, true)
}

// shared generator function
func generateBuildingCSV(fileName string, start time.Time, days int, malform bool) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"timestamp", "kwh"})

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h++ {
			ts := day.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)
			val := fmt.Sprintf("%.2f", 5+rand.Float64()*45)
			if malform && rand.Float32() < 0.05 {
				switch rand.Intn(3) {
				case 0:
					val = "ERROR" // intentionally malformed
				case 1:
					val = "-3.5"
				default:
					val = ""
				}
			}
			w.Write([]string{ts.Format("2006-01-02 15:04:05"), val})
		}
	}
	return nil
}
