package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"campus/energy/config/log"
	"campus/energy/config/toml"
	"campus/energy/entity"
	"campus/energy/src/tools"
)

// ErrNoValidData aborts the run when no building yields usable rows.
var ErrNoValidData = errors.New("no valid readings in any input file")

// DashboardServiceImpl drives the one-shot pipeline:
// load -> merge -> aggregate -> summarize -> export -> render.
type DashboardServiceImpl struct{}

func (d *DashboardServiceImpl) Run(cfg toml.TomlConfig) (entity.RunResult, error) {
	result := entity.RunResult{RunID: tools.NewUuid()}
	log.Logger.Info("pipeline started",
		zap.String("run_id", result.RunID),
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("output_dir", cfg.Output.Dir))

	opts := &LoadOptions{
		TimestampColumn:   cfg.Data.Timestampcolumn,
		ConsumptionColumn: cfg.Data.Consumptioncolumn,
		ParseLocation:     nil,
	}

	paths, err := d.discoverInputs(cfg.Data.Dir, cfg.Data.Pattern)
	if err != nil {
		return result, err
	}

	var loaded []LoadedFile
	var rejected []entity.RejectedRow
	for _, path := range paths {
		status := d.loadOne(path, opts, &loaded, &rejected)
		result.Files = append(result.Files, status)
	}

	ds, kept, _ := IMergeService.Merge(loaded)
	result.RowsKept = kept
	// count every rejection, including rows from files that failed as a
	// whole and zip members, so the manifest matches rejected_rows.csv
	result.RowsDropped = len(rejected)
	if kept == 0 {
		log.Logger.Error("no usable input data after validation", zap.Int("files_seen", len(paths)))
		return result, fmt.Errorf("%d input files: %w", len(paths), ErrNoValidData)
	}

	daily := IAggregateService.Daily(ds)
	weekly := IAggregateService.Weekly(ds)
	peaks := IAggregateService.Peaks(ds)
	summaries := ISummaryService.BuildingSummaries(ds, daily)
	campus := ISummaryService.Campus(summaries, ds, daily, weekly)
	result.ReportText = ISummaryService.RenderReport(campus, summaries)

	out := func(name string) string { return filepath.Join(cfg.Output.Dir, name) }
	type exportStep struct {
		name  string
		write func(string) error
	}
	exports := []exportStep{
		{"cleaned_energy_data.csv", func(p string) error { return IExportService.WriteCleanedDataset(ds, p) }},
		{"building_summary.csv", func(p string) error { return IExportService.WriteBuildingSummary(summaries, p) }},
		{"summary.txt", func(p string) error { return IExportService.WriteCampusReport(result.ReportText, p) }},
		{"rejected_rows.csv", func(p string) error { return IExportService.WriteRejectedRows(rejected, p) }},
	}
	if cfg.Export.Xlsx {
		exports = append(exports, exportStep{"building_summary.xlsx", func(p string) error {
			return IExportService.WriteSummaryWorkbook(summaries, daily, p)
		}})
	}
	if cfg.Export.Pdf {
		exports = append(exports, exportStep{"campus_report.pdf", func(p string) error {
			return IExportService.WriteCampusPDF(campus, summaries, p)
		}})
	}
	for _, ex := range exports {
		path := out(ex.name)
		if err := ex.write(path); err != nil {
			return result, fmt.Errorf("export %s: %w", ex.name, err)
		}
		result.Outputs = append(result.Outputs, path)
		log.Logger.Info("output written", zap.String("file", path))
	}

	chartPath := out("dashboard.png")
	if err := IChartService.RenderDashboard(daily, weekly, peaks, chartPath, cfg.Chart.Widthcm, cfg.Chart.Heightcm); err != nil {
		// rendering failure is fatal, reported once
		return result, fmt.Errorf("render dashboard: %w", err)
	}
	result.Outputs = append(result.Outputs, chartPath)
	log.Logger.Info("output written", zap.String("file", chartPath))

	log.Logger.Info("pipeline finished",
		zap.String("run_id", result.RunID),
		zap.Int("rows_kept", kept),
		zap.Int("rows_dropped", result.RowsDropped),
		zap.Int("files", len(result.Files)),
		zap.Int("outputs", len(result.Outputs)))
	return result, nil
}

// discoverInputs lists building CSVs and zip bundles in the data dir.
func (d *DashboardServiceImpl) discoverInputs(dataDir, pattern string) ([]string, error) {
	if _, err := os.Stat(dataDir); err != nil {
		log.Logger.Error("data directory not found", zap.String("dir", dataDir), zap.Error(err))
		return nil, fmt.Errorf("data directory %s: %w", dataDir, ErrNoValidData)
	}
	csvs, err := filepath.Glob(filepath.Join(dataDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	zips, err := filepath.Glob(filepath.Join(dataDir, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("glob *.zip: %w", err)
	}
	// the configured pattern may itself match the archives picked up by
	// the *.zip glob, so the combined list must be de-duplicated
	paths := append(csvs, zips...)
	sort.Strings(paths)
	return slices.Compact(paths), nil
}

// loadOne dispatches a single input by extension and records its
// manifest entry. File-level failures skip the file, never the run.
func (d *DashboardServiceImpl) loadOne(path string, opts *LoadOptions, loaded *[]LoadedFile, rejected *[]entity.RejectedRow) entity.FileStatus {
	log.Logger.Info("processing input file", zap.String("file", path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		files, errs := IZipService.LoadZipFile(path, opts)
		status := entity.FileStatus{File: path, Status: entity.FileStatusLoaded}
		for _, lf := range files {
			*loaded = append(*loaded, lf)
			*rejected = append(*rejected, lf.Rejected...)
			status.RowsKept += len(lf.Readings)
			status.RowsDropped += len(lf.Rejected)
		}
		if len(errs) > 0 {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			status.Error = strings.Join(msgs, "; ")
			log.Logger.Warn("zip loaded with errors", zap.String("file", path), zap.String("errors", status.Error))
		}
		if len(files) == 0 {
			status.Status = entity.FileStatusSkipped
			log.Logger.Warn("zip yielded no building files", zap.String("file", path))
		}
		return status

	default:
		verrs, err := IFileCheckerService.CheckCsvFile(path, opts)
		if err != nil {
			log.Logger.Warn("file skipped", zap.String("file", path), zap.Error(err))
			return entity.FileStatus{File: path, Status: entity.FileStatusSkipped, Error: err.Error()}
		}
		if len(verrs) > 0 {
			msgs := make([]string, 0, len(verrs))
			for _, v := range verrs {
				msgs = append(msgs, fmt.Sprintf("line %d: %s", v.Line, v.Message))
			}
			msg := strings.Join(msgs, "; ")
			log.Logger.Warn("file failed structural check", zap.String("file", path), zap.String("errors", msg))
			return entity.FileStatus{File: path, Status: entity.FileStatusSkipped, Error: msg}
		}

		lf, err := ICsvLoadService.LoadBuildingFile(path, opts)
		*rejected = append(*rejected, lf.Rejected...)
		if err != nil {
			log.Logger.Warn("file skipped", zap.String("file", path), zap.Error(err))
			return entity.FileStatus{
				File:        path,
				BuildingID:  lf.Building.ID,
				Status:      entity.FileStatusSkipped,
				RowsDropped: len(lf.Rejected),
				Error:       err.Error(),
			}
		}
		*loaded = append(*loaded, lf)
		log.Logger.Info("file loaded",
			zap.String("file", path),
			zap.String("building", lf.Building.ID),
			zap.Int("rows_kept", len(lf.Readings)),
			zap.Int("rows_dropped", len(lf.Rejected)))
		return entity.FileStatus{
			File:        path,
			BuildingID:  lf.Building.ID,
			Status:      entity.FileStatusLoaded,
			RowsKept:    len(lf.Readings),
			RowsDropped: len(lf.Rejected),
		}
	}
}
