package service

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"campus/energy/config/log"
	"campus/energy/config/toml"
	"campus/energy/entity"
)

// LoadOptions defines column names and parsing behaviour for building CSVs
type LoadOptions struct {
	TimestampColumn   string
	ConsumptionColumn string
	ParseLocation     *time.Location
}

// DefaultLoadOptions returns options from the run configuration
func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{
		TimestampColumn:   toml.GetConfig().Data.Timestampcolumn,
		ConsumptionColumn: toml.GetConfig().Data.Consumptioncolumn,
		ParseLocation:     time.UTC,
	}
}

// LoadedFile is the validated outcome of loading one building CSV.
type LoadedFile struct {
	Building entity.Building
	Readings []entity.MeterReading
	Rejected []entity.RejectedRow
}

type CsvLoadServiceImpl struct{}

// ErrNoValidRows rejects a whole file that yielded nothing usable.
var ErrNoValidRows = errors.New("no valid rows")

// LoadBuildingFile parses one per-building CSV from disk.
func (p *CsvLoadServiceImpl) LoadBuildingFile(filePath string, opts *LoadOptions) (LoadedFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return LoadedFile{}, fmt.Errorf("open csv %s: %w", filePath, err)
	}
	defer f.Close()
	return p.LoadBuildingCSV(filePath, f, opts)
}

// LoadBuildingCSV parses one per-building CSV stream. Rows with an
// unparseable timestamp or a non-numeric, non-finite or negative
// consumption are dropped and recorded, never fatal. A file with zero
// valid rows fails as a whole with ErrNoValidRows.
func (p *CsvLoadServiceImpl) LoadBuildingCSV(sourceName string, r io.Reader, opts *LoadOptions) (LoadedFile, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}

	building := entity.BuildingFromPath(sourceName)
	out := LoadedFile{Building: building}

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.LazyQuotes = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if errors.Is(err, io.EOF) {
		return out, fmt.Errorf("%s: %w", sourceName, ErrNoValidRows)
	}
	if err != nil {
		return out, fmt.Errorf("csv read header %s: %w", sourceName, err)
	}

	tsIdx := findColumn(header, opts.TimestampColumn)
	kwhIdx := findColumn(header, opts.ConsumptionColumn)
	if tsIdx < 0 || kwhIdx < 0 {
		return out, fmt.Errorf("%s: missing required columns %q/%q", sourceName, opts.TimestampColumn, opts.ConsumptionColumn)
	}

	line := 1
	for {
		fields, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			p.addRejectedRow(&out, sourceName, line, fields, fmt.Errorf("csv read: %w", err))
			continue
		}
		if len(fields) == 0 || (len(fields) == 1 && strings.TrimSpace(fields[0]) == "") {
			continue
		}
		if len(fields) <= tsIdx || len(fields) <= kwhIdx {
			p.addRejectedRow(&out, sourceName, line, fields, fmt.Errorf("not enough fields"))
			continue
		}

		ts, err := p.ParseTimestamp(strings.TrimSpace(fields[tsIdx]), opts.ParseLocation)
		if err != nil {
			p.addRejectedRow(&out, sourceName, line, fields, fmt.Errorf("invalid timestamp: %w", err))
			continue
		}

		raw := strings.TrimSpace(fields[kwhIdx])
		val, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			p.addRejectedRow(&out, sourceName, line, fields, fmt.Errorf("invalid consumption: %w", err))
			continue
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			p.addRejectedRow(&out, sourceName, line, fields, fmt.Errorf("consumption not finite: %s", raw))
			continue
		}
		if val < 0 {
			p.addRejectedRow(&out, sourceName, line, fields, fmt.Errorf("negative consumption: %s", raw))
			continue
		}

		out.Readings = append(out.Readings, entity.MeterReading{
			BuildingID:     building.ID,
			Timestamp:      ts,
			ConsumptionKwh: val,
		})
	}

	if len(out.Readings) == 0 {
		return out, fmt.Errorf("%s: %w", sourceName, ErrNoValidRows)
	}
	return out, nil
}

func (p *CsvLoadServiceImpl) addRejectedRow(out *LoadedFile, file string, line int, fields []string, err error) {
	log.Logger.Warn("row rejected",
		zap.String("file", file),
		zap.Int("line", line),
		zap.Strings("fields", fields),
		zap.Error(err))
	out.Rejected = append(out.Rejected, entity.RejectedRow{
		File:   file,
		Line:   line,
		Fields: append([]string(nil), fields...),
		Reason: err.Error(),
	})
}

// ParseTimestamp parses multiple timestamp layouts
func (p *CsvLoadServiceImpl) ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	var t time.Time
	var err error
	for _, layout := range layouts {
		t, err = time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
