package service

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type ValidationError struct {
	Line    int
	Message string
}

type FileCheckerServiceImpl struct {
}

// CheckCsvFile validates the structure of a building CSV before loading.
// Any structural error rejects the whole file; the run continues with
// the remaining files.
func (f *FileCheckerServiceImpl) CheckCsvFile(path string, opts *LoadOptions) ([]ValidationError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return f.CheckCsv(file, opts)
}

// CheckCsv validates the header of a building CSV stream.
func (f *FileCheckerServiceImpl) CheckCsv(r io.Reader, opts *LoadOptions) ([]ValidationError, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.LazyQuotes = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if errors.Is(err, io.EOF) {
		return []ValidationError{{Line: 0, Message: "empty file"}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var verrs []ValidationError
	if findColumn(header, opts.TimestampColumn) < 0 {
		verrs = append(verrs, ValidationError{Line: 1, Message: "missing required column: " + opts.TimestampColumn})
	}
	if findColumn(header, opts.ConsumptionColumn) < 0 {
		verrs = append(verrs, ValidationError{Line: 1, Message: "missing required column: " + opts.ConsumptionColumn})
	}
	return verrs, nil
}

// findColumn locates a named column in the header, case-insensitive.
// The first cell may carry a UTF-8 BOM.
func findColumn(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}
