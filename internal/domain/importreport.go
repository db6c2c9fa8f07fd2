package domain

// ImportError describes a rejected row of an imported file.
type ImportError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// ImportReport summarizes one CSV import. Total counts every data line,
// including skipped and rejected ones.
type ImportReport struct {
	Imported int           `json:"imported"`
	Total    int           `json:"total"`
	Errors   []ImportError `json:"errors,omitempty"`
}
