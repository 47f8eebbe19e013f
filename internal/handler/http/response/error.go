package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/tabular"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Missing required columns
	var schemaErr *tabular.SchemaError
	if errors.As(err, &schemaErr) {
		UnprocessableEntity(w, "SCHEMA_ERROR", err.Error(), map[string]string{
			"source":  schemaErr.Source,
			"missing": strings.Join(schemaErr.Missing, ", "),
			"found":   strings.Join(schemaErr.Found, ", "),
		})
		return
	}

	switch {
	case errors.Is(err, schedule.ErrNoDateColumns):
		UnprocessableEntity(w, "SCHEDULE_FORMAT_ERROR", "No date columns detected in schedule file", nil)

	// Undecodable uploads
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		BadRequest(w, "File is not an xlsx or xls workbook", nil)
	case errors.Is(err, spreadsheet.ErrNoWorksheet):
		BadRequest(w, "Workbook has no worksheet", nil)
	case errors.Is(err, spreadsheet.ErrEmptyWorksheet):
		BadRequest(w, "Worksheet has no header row", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
