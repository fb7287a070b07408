package service_test

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/energy/config/log"
	"campus/energy/config/toml"
	"campus/energy/entity"
	"campus/energy/src/service"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "energy-test-*")
	if err != nil {
		panic(err)
	}
	log.InitLogger(filepath.Join(dir, "test.log"), "error")
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func runConfig(dataDir, outDir string) toml.TomlConfig {
	cfg := toml.GetConfig()
	cfg.Data.Dir = dataDir
	cfg.Output.Dir = outDir
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()

	writeFile(t, filepath.Join(dataDir, "library.csv"),
		"timestamp,kwh",
		"2025-03-10 00:00:00,2.0",
		"2025-03-10 01:00:00,3.5",
		"2025-03-10 02:00:00,-1.0",
		"2025-03-11 09:00:00,4.0",
	)
	writeFile(t, filepath.Join(dataDir, "hostel.csv"),
		"timestamp,kwh",
		"2025-03-10 00:00:00,10.0",
		"2025-03-10 13:00:00,25.0",
		"2025-03-11 13:00:00,24.0",
	)
	// structurally broken file is skipped, not fatal
	writeFile(t, filepath.Join(dataDir, "boiler_room.csv"),
		"time,usage",
		"2025-03-10 00:00:00,1.0",
	)
	// sound header but every row invalid, so the whole file is skipped
	writeFile(t, filepath.Join(dataDir, "annex.csv"),
		"timestamp,kwh",
		"not-a-time,5.0",
		"2025-03-10 05:00:00,-2.0",
	)
	// admin_block.csv is intentionally absent

	result, err := service.IDashboardService.Run(runConfig(dataDir, outDir))
	require.NoError(t, err)

	assert.Equal(t, 6, result.RowsKept)
	// rejections from annex.csv count even though the file never merged
	assert.Equal(t, 3, result.RowsDropped)
	require.Len(t, result.Files, 4)

	byFile := map[string]entity.FileStatus{}
	for _, fs := range result.Files {
		byFile[filepath.Base(fs.File)] = fs
	}
	assert.Equal(t, entity.FileStatusSkipped, byFile["boiler_room.csv"].Status)
	assert.Equal(t, entity.FileStatusSkipped, byFile["annex.csv"].Status)
	assert.Equal(t, 2, byFile["annex.csv"].RowsDropped)
	assert.Equal(t, entity.FileStatusLoaded, byFile["library.csv"].Status)
	assert.Equal(t, 1, byFile["library.csv"].RowsDropped)

	for _, name := range []string{
		"cleaned_energy_data.csv",
		"building_summary.csv",
		"summary.txt",
		"rejected_rows.csv",
		"building_summary.xlsx",
		"campus_report.pdf",
		"dashboard.png",
	} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	// rejected_rows.csv carries the rows from the wholly skipped file too
	rej, err := os.ReadFile(filepath.Join(outDir, "rejected_rows.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(rej), "annex.csv")

	// campus report omits the missing building and names the highest
	assert.NotContains(t, result.ReportText, "admin_block")
	assert.Contains(t, result.ReportText, "Highest consuming building: hostel")
	assert.Contains(t, result.ReportText, "library: 9.50 kWh")
}

func TestRunIsDeterministicAcrossInvocations(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, filepath.Join(dataDir, "library.csv"),
		"timestamp,kwh",
		"2025-03-10 00:00:00,2.0",
		"2025-03-10 01:00:00,3.5",
	)

	out1 := t.TempDir()
	out2 := t.TempDir()
	_, err := service.IDashboardService.Run(runConfig(dataDir, out1))
	require.NoError(t, err)
	_, err = service.IDashboardService.Run(runConfig(dataDir, out2))
	require.NoError(t, err)

	for _, name := range []string{"cleaned_energy_data.csv", "building_summary.csv", "summary.txt", "campus_report.pdf"} {
		a, err := os.ReadFile(filepath.Join(out1, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(out2, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestRunFailsWhenAllFilesInvalid(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()

	writeFile(t, filepath.Join(dataDir, "library.csv"),
		"timestamp,kwh",
		"garbage,2.0",
		"2025-03-10 01:00:00,-3.5",
	)
	writeFile(t, filepath.Join(dataDir, "hostel.csv"),
		"time,usage",
		"2025-03-10 00:00:00,1.0",
	)

	_, err := service.IDashboardService.Run(runConfig(dataDir, outDir))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNoValidData))

	// no output files were produced
	_, err = os.Stat(filepath.Join(outDir, "cleaned_energy_data.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunFailsWhenDataDirMissing(t *testing.T) {
	_, err := service.IDashboardService.Run(runConfig(filepath.Join(t.TempDir(), "nope"), t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNoValidData))
}

func TestRunLoadsZippedBuildingFiles(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()

	zipPath := filepath.Join(dataDir, "campus_bundle.zip")
	zf, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	w, err := zw.Create("gym.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("timestamp,kwh\n2025-03-10 08:00:00,12.0\n2025-03-10 09:00:00,14.5\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())

	result, err := service.IDashboardService.Run(runConfig(dataDir, outDir))
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsKept)
	assert.Contains(t, result.ReportText, "gym: 26.50 kWh")
}

func TestRunWidePatternCountsEachArchiveOnce(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()

	writeFile(t, filepath.Join(dataDir, "library.csv"),
		"timestamp,kwh",
		"2025-03-10 00:00:00,2.0",
		"2025-03-10 01:00:00,3.5",
	)

	zipPath := filepath.Join(dataDir, "campus_bundle.zip")
	zf, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	w, err := zw.Create("gym.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("timestamp,kwh\n2025-03-10 08:00:00,12.0\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())

	// a pattern this wide matches the archive as well as the *.zip glob
	cfg := runConfig(dataDir, outDir)
	cfg.Data.Pattern = "*"

	result, err := service.IDashboardService.Run(cfg)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Equal(t, 3, result.RowsKept)
	assert.Contains(t, result.ReportText, "gym: 12.00 kWh")
	assert.Contains(t, result.ReportText, "library: 5.50 kWh")
}
