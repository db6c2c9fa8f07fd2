package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
)

const importFormField = "file"

// Importer runs a CSV import over the contents of r.
type Importer interface {
	ImportReader(ctx context.Context, r io.Reader) (*domain.ImportReport, error)
}

// ImportHandler handles CSV bulk import of issues.
type ImportHandler struct {
	importer Importer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importer Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

type importResponse struct {
	Success  bool                 `json:"success"`
	Message  string               `json:"message"`
	Imported int                  `json:"imported"`
	Total    int                  `json:"total"`
	Errors   []domain.ImportError `json:"errors,omitempty"`
}

// Import reads the uploaded multipart "file" field and imports its rows.
// The import keeps running if the client goes away mid-request.
func (h *ImportHandler) Import(c echo.Context) error {
	fh, err := c.FormFile(importFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return c.JSON(http.StatusBadRequest, ErrorBody{Error: "No file uploaded"})
		}
		return &OperationError{Summary: "Failed to import CSV", Err: fmt.Errorf("read upload: %w", err)}
	}

	src, err := fh.Open()
	if err != nil {
		return &OperationError{Summary: "Failed to import CSV", Err: fmt.Errorf("open upload: %w", err)}
	}
	defer src.Close()

	ctx := context.WithoutCancel(c.Request().Context())

	report, err := h.importer.ImportReader(ctx, src)
	if err != nil {
		return &OperationError{Summary: "Failed to import CSV", Err: err}
	}

	return c.JSON(http.StatusOK, importResponse{
		Success:  true,
		Message:  fmt.Sprintf("Successfully imported %d issues", report.Imported),
		Imported: report.Imported,
		Total:    report.Total,
		Errors:   report.Errors,
	})
}
