package dto

// ImportResult summarises a CSV import run.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
