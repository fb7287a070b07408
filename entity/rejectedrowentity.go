package entity

// RejectedRow records one input row dropped during validation,
// kept for the rejected_rows.csv output and the run log.
type RejectedRow struct {
	File   string   `json:"file"`
	Line   int      `json:"line"`
	Fields []string `json:"fields"`
	Reason string   `json:"reason"`
}
