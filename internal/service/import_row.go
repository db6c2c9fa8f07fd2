package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
	"github.com/royi-klein/ClinicalTrial/internal/validation"
)

// Recognized import columns. Any other column is ignored.
const (
	colTitle       = "title"
	colDescription = "description"
	colSite        = "site"
	colSeverity    = "severity"
	colStatus      = "status"
	colCreatedAt   = "createdAt"
)

// Accepted createdAt layouts, tried in order. Layouts without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
}

// Row maps a header name to its trimmed, non-empty value.
// A missing key means the value was absent or blank.
type Row map[string]string

// mapRow pairs headers with values by position. Values past the header
// width are dropped; headers past the value count are absent.
func mapRow(headers, values []string) Row {
	row := make(Row, len(headers))
	for i, header := range headers {
		if i >= len(values) {
			break
		}
		if v := strings.TrimSpace(values[i]); v != "" {
			row[header] = v
		} else {
			delete(row, header)
		}
	}
	return row
}

func (r Row) lookup(key, fallback string) string {
	if v, ok := r[key]; ok {
		return v
	}
	return fallback
}

// normalizeRow projects a mapped row onto a NewIssue, applying defaults
// and validating the result. now is used when the row has no createdAt.
func normalizeRow(row Row, now time.Time, v *validation.Validator) (domain.NewIssue, error) {
	issue := domain.NewIssue{
		Title:       row[colTitle],
		Description: row[colDescription],
		Severity:    domain.IssueSeverity(row.lookup(colSeverity, string(domain.IssueSeverityMinor))),
		Status:      domain.IssueStatus(row.lookup(colStatus, string(domain.IssueStatusOpen))),
		CreatedAt:   now,
	}

	if site, ok := row[colSite]; ok {
		issue.Site = &site
	}

	if raw, ok := row[colCreatedAt]; ok {
		ts, err := parseTimestamp(raw)
		if err != nil {
			return domain.NewIssue{}, &domain.ValidationError{
				Field:   colCreatedAt,
				Message: fmt.Sprintf("invalid timestamp %q", raw),
			}
		}
		issue.CreatedAt = ts
	}

	if err := v.Validate(issue); err != nil {
		return domain.NewIssue{}, err
	}
	return issue, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
