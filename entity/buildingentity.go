package entity

import (
	"path/filepath"
	"strings"
)

// Building identifies one meter data source (one CSV file).
type Building struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	SourceFile  string `json:"source_file"`
}

// BuildingFromPath derives the building identity from a file name,
// e.g. "data/admin_block.csv" -> id "admin_block", display "Admin Block".
func BuildingFromPath(path string) Building {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	words := strings.Fields(strings.ReplaceAll(stem, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return Building{
		ID:          stem,
		DisplayName: strings.Join(words, " "),
		SourceFile:  path,
	}
}
