package entity

const (
	FileStatusLoaded  = "loaded"
	FileStatusSkipped = "skipped"
)

// FileStatus is one entry of the per-run input manifest.
type FileStatus struct {
	File        string `json:"file"`
	BuildingID  string `json:"building_id,omitempty"`
	Status      string `json:"status"`
	RowsKept    int    `json:"rows_kept"`
	RowsDropped int    `json:"rows_dropped"`
	Error       string `json:"error,omitempty"`
}

// RunResult is the outcome of one full pipeline invocation.
type RunResult struct {
	RunID       string       `json:"run_id"`
	Files       []FileStatus `json:"files"`
	RowsKept    int          `json:"rows_kept"`
	RowsDropped int          `json:"rows_dropped"`
	Outputs     []string     `json:"outputs"`
	ReportText  string       `json:"report_text"`
}
