package service

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"campus/energy/config/log"
)

// ZipServiceImpl expands zipped building CSV bundles
type ZipServiceImpl struct {
}

// LoadZipFile reads a zip and loads every member CSV as its own
// building file. A failed member skips only that member.
func (p *ZipServiceImpl) LoadZipFile(filePath string, opts *LoadOptions) ([]LoadedFile, []error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, []error{fmt.Errorf("open zip %s: %w", filePath, err)}
	}
	defer r.Close()

	var loaded []LoadedFile
	var errs []error
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries, entryErrs := p.loadZipEntry(f, opts)
		loaded = append(loaded, entries...)
		errs = append(errs, entryErrs...)
	}
	return loaded, errs
}

// loadZipEntry handles a single file entry in the zip
func (p *ZipServiceImpl) loadZipEntry(f *zip.File, opts *LoadOptions) ([]LoadedFile, []error) {
	rc, err := f.Open()
	if err != nil {
		return nil, []error{fmt.Errorf("entry %s: %w", f.Name, err)}
	}
	defer rc.Close()

	name := strings.ToLower(f.Name)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return p.loadNestedZip(rc, f.Name, opts) // re-unzip if current entry is a zip
	case strings.HasSuffix(name, ".csv"):
		lf, err := ICsvLoadService.LoadBuildingCSV(f.Name, rc, opts)
		if err != nil {
			return nil, []error{fmt.Errorf("entry %s: %w", f.Name, err)}
		}
		log.Logger.Info("zip entry loaded", zap.String("entry", f.Name), zap.Int("rows", len(lf.Readings)))
		return []LoadedFile{lf}, nil
	default:
		return nil, nil
	}
}

// loadNestedZip writes a nested zip to a temp file and recurses
func (p *ZipServiceImpl) loadNestedZip(rc io.Reader, name string, opts *LoadOptions) ([]LoadedFile, []error) {
	tmpFile, err := os.CreateTemp("", "nested-*.zip")
	if err != nil {
		return nil, []error{err}
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := io.Copy(tmpFile, rc); err != nil {
		return nil, []error{fmt.Errorf("nested zip %s: %w", name, err)}
	}
	return p.LoadZipFile(tmpFile.Name(), opts)
}
