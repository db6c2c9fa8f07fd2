package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/royi-klein/ClinicalTrial/internal/csvline"
	"github.com/royi-klein/ClinicalTrial/internal/domain"
	"github.com/royi-klein/ClinicalTrial/internal/validation"
)

const (
	defaultSeparator = ','
	utf8BOM          = "\ufeff"
)

// IssueStore defines the issue persistence interface consumed by ImportService.
type IssueStore interface {
	Create(ctx context.Context, issue domain.NewIssue) (*domain.Issue, error)
}

// ImportOption customizes an ImportService.
type ImportOption func(*ImportService)

// WithClock sets the clock used for rows without a createdAt value.
func WithClock(now func() time.Time) ImportOption {
	return func(s *ImportService) { s.now = now }
}

// WithSeparator sets the field separator. The default is a comma.
func WithSeparator(sep rune) ImportOption {
	return func(s *ImportService) { s.separator = sep }
}

// ImportService turns delimited text into persisted issues, one row at a time.
type ImportService struct {
	issues    IssueStore
	validator *validation.Validator
	now       func() time.Time
	separator rune
}

// NewImportService creates a new ImportService.
func NewImportService(issues IssueStore, v *validation.Validator, opts ...ImportOption) *ImportService {
	s := &ImportService{
		issues:    issues,
		validator: v,
		now:       time.Now,
		separator: defaultSeparator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportReader reads the whole of r and imports it.
func (s *ImportService) ImportReader(ctx context.Context, r io.Reader) (*domain.ImportReport, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return s.Import(ctx, string(b))
}

// Import parses content as a header line followed by data lines and inserts
// one issue per accepted line. A failing row is recorded in the report and
// never stops the rest of the file. Rows are committed independently, so an
// interrupted import leaves the rows before it persisted.
//
// The only top-level error is domain.ErrEmptyFile.
func (s *ImportService) Import(ctx context.Context, content string) (*domain.ImportReport, error) {
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyFile
	}

	headers := csvline.Split(lines[0], s.separator)
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	report := &domain.ImportReport{Total: len(lines) - 1}

	for i, line := range lines[1:] {
		lineNo := i + 2 // line 1 is the header

		values := csvline.Split(line, s.separator)
		if strings.TrimSpace(values[0]) == "" {
			continue
		}

		if err := s.importRow(ctx, headers, values); err != nil {
			slog.Warn("import row rejected", "line", lineNo, "error", err)
			report.Errors = append(report.Errors, domain.ImportError{
				Line:  lineNo,
				Error: err.Error(),
			})
			continue
		}
		report.Imported++
	}

	slog.Info("csv import finished",
		"imported", report.Imported,
		"total", report.Total,
		"failed", len(report.Errors),
	)

	return report, nil
}

func (s *ImportService) importRow(ctx context.Context, headers, values []string) error {
	issue, err := normalizeRow(mapRow(headers, values), s.now(), s.validator)
	if err != nil {
		return err
	}

	if _, err := s.issues.Create(ctx, issue); err != nil {
		return err
	}
	return nil
}

// splitLines decodes content into lines. Surrounding whitespace is dropped,
// so trailing newlines do not produce data lines. Returns nil when nothing
// but whitespace remains.
func splitLines(content string) []string {
	content = strings.TrimPrefix(content, utf8BOM)
	content = strings.ToValidUTF8(content, "\uFFFD")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
