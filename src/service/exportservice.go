package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"campus/energy/entity"
)

const timestampLayout = "2006-01-02 15:04:05"

type ExportServiceImpl struct{}

func formatKwh(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCleanedDataset writes the merged dataset as CSV, overwriting any
// previous run. Row order and number formatting are fixed, so repeated
// runs on identical input are byte-identical.
func (e *ExportServiceImpl) WriteCleanedDataset(ds entity.CombinedDataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"timestamp", "building_id", "consumption_kwh"})
	for _, r := range ds {
		w.Write([]string{r.Timestamp.Format(timestampLayout), r.BuildingID, formatKwh(r.ConsumptionKwh)})
	}
	w.Flush()
	return w.Error()
}

// WriteBuildingSummary writes the per-building tabular summary.
func (e *ExportServiceImpl) WriteBuildingSummary(summaries []entity.BuildingSummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"building_id", "total_kwh", "mean_kwh", "min_kwh", "average_daily_kwh", "peak_kwh", "peak_timestamp"})
	for _, b := range summaries {
		w.Write([]string{
			b.BuildingID,
			formatKwh(b.TotalKwh),
			formatKwh(b.MeanKwh),
			formatKwh(b.MinKwh),
			formatKwh(b.AverageDailyKwh),
			formatKwh(b.PeakKwh),
			b.PeakTimestamp.Format(timestampLayout),
		})
	}
	w.Flush()
	return w.Error()
}

// WriteCampusReport writes the free-text campus summary.
func (e *ExportServiceImpl) WriteCampusReport(text string, path string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteRejectedRows persists every dropped row for inspection. The raw
// fields are stored as a JSON array in the last column.
func (e *ExportServiceImpl) WriteRejectedRows(rows []entity.RejectedRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"file", "line", "reason", "data"})
	for _, r := range rows {
		data, err := json.Marshal(r.Fields)
		if err != nil {
			continue
		}
		w.Write([]string{r.File, strconv.Itoa(r.Line), r.Reason, string(data)})
	}
	w.Flush()
	return w.Error()
}

// WriteSummaryWorkbook renders the per-building summary and the daily
// aggregates as an XLSX workbook.
func (e *ExportServiceImpl) WriteSummaryWorkbook(summaries []entity.BuildingSummary, daily []entity.DailyAggregate, path string) error {
	f := excelize.NewFile()
	summarySheet := "summary"
	dailySheet := "daily"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(dailySheet)

	headers := []string{"Building", "Total (kWh)", "Mean (kWh)", "Min (kWh)", "Avg daily (kWh)", "Peak (kWh)", "Peak timestamp"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summarySheet, cell, h)
	}
	for i, b := range summaries {
		row := i + 2
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), b.BuildingID)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), b.TotalKwh)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), b.MeanKwh)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), b.MinKwh)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), b.AverageDailyKwh)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), b.PeakKwh)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("G%d", row), b.PeakTimestamp.Format(timestampLayout))
	}

	_ = f.SetCellValue(dailySheet, "A1", "Building")
	_ = f.SetCellValue(dailySheet, "B1", "Day")
	_ = f.SetCellValue(dailySheet, "C1", "Total (kWh)")
	_ = f.SetCellValue(dailySheet, "D1", "Mean (kWh)")
	for i, d := range daily {
		row := i + 2
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("A%d", row), d.BuildingID)
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("B%d", row), d.Day.Format("2006-01-02"))
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("C%d", row), d.TotalKwh)
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("D%d", row), d.MeanKwh)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}

// WriteCampusPDF renders the campus summary as a one-page PDF.
func (e *ExportServiceImpl) WriteCampusPDF(campus entity.CampusSummary, summaries []entity.BuildingSummary, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// pinned metadata date: identical input must produce identical bytes,
	// and gofpdf falls back to the wall clock when the date is zero
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Campus Energy Use Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total campus consumption: %.2f kWh", campus.TotalKwh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Highest consuming building: %s (%.2f kWh)", campus.Highest.BuildingID, campus.Highest.TotalKwh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Lowest consuming building: %s (%.2f kWh)", campus.Lowest.BuildingID, campus.Lowest.TotalKwh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Peak load: %.2f kWh at %s",
		campus.PeakReading.ConsumptionKwh, campus.PeakReading.Timestamp.Format(timestampLayout)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average daily load: %.2f kWh", campus.AvgDailyKwh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average weekly load: %.2f kWh", campus.AvgWeeklyKwh))
	pdf.Ln(8)

	// Buildings table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 6, "Building", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Total (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Avg daily (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Peak (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Peak time", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, b := range summaries {
		pdf.CellFormat(45, 6, b.BuildingID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", b.TotalKwh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", b.AverageDailyKwh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", b.PeakKwh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, b.PeakTimestamp.Format(timestampLayout), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}
