package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-form-keeper/models"
)

// Fixed export columns preceding the field columns.
const (
	ColumnSubmissionID = "Submission ID"
	ColumnSubmittedAt  = "Submitted At"
	ColumnStatus       = "Status"
)

const fileFallback = "[file]"

type exportColumn struct {
	header string
	field  models.Field
}

// ExportProjector flattens submissions into rows keyed by column header.
// Field columns follow the display order of the form; conditional fields
// come right after their parent.
type ExportProjector struct {
}

func NewExportProjector() *ExportProjector {
	return &ExportProjector{}
}

func (p *ExportProjector) Project(form models.Form, submissions []models.Submission) models.Export {
	columns := fieldColumns(form.Fields)

	headers := make([]string, 0, len(columns)+3)
	headers = append(headers, ColumnSubmissionID, ColumnSubmittedAt, ColumnStatus)
	for _, column := range columns {
		headers = append(headers, column.header)
	}

	rows := make([]models.ExportRow, 0, len(submissions))
	for _, submission := range submissions {
		row := models.ExportRow{
			ColumnSubmissionID: submission.ID,
			ColumnSubmittedAt:  submittedAt(submission),
			ColumnStatus:       string(submission.Status),
		}
		for _, column := range columns {
			row[column.header] = renderCell(column.field, submission.Answers[column.field.Name])
		}
		rows = append(rows, row)
	}

	return models.Export{Columns: headers, Rows: rows}
}

// fieldColumns lists the field columns. A label used twice is told apart by
// the field name.
func fieldColumns(fields []models.Field) []exportColumn {
	var columns []exportColumn
	used := map[string]bool{
		ColumnSubmissionID: true,
		ColumnSubmittedAt:  true,
		ColumnStatus:       true,
	}

	var walk func(fields []models.Field)
	walk = func(fields []models.Field) {
		for _, field := range models.SortFieldsByOrder(fields) {
			header := field.Label
			if used[header] {
				header = fmt.Sprintf("%s (%s)", field.Label, field.Name)
			}
			used[header] = true
			columns = append(columns, exportColumn{header: header, field: field})

			walk(field.ConditionalFields)
		}
	}
	walk(fields)

	return columns
}

func submittedAt(submission models.Submission) string {
	at := submission.Metadata.SubmittedAt
	if at.IsZero() {
		at = submission.CreatedAt
	}
	if at.IsZero() {
		return ""
	}
	return at.UTC().Format(time.RFC3339)
}

// renderCell turns one answer into text. Arrays are joined with ", ".
func renderCell(field models.Field, value any) string {
	if field.Type == models.FieldTypeFile {
		return renderFiles(value)
	}

	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, renderScalar(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	}
	return renderScalar(value)
}

func renderScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
	return fmt.Sprint(value)
}

func renderFiles(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, renderFile(item))
		}
		return strings.Join(parts, ", ")
	case []models.UploadedFile:
		parts := make([]string, 0, len(v))
		for _, file := range v {
			parts = append(parts, renderFile(file))
		}
		return strings.Join(parts, ", ")
	}
	return renderFile(value)
}

// renderFile prefers the url, then the path, then the original name.
func renderFile(value any) string {
	var candidates []string
	switch v := value.(type) {
	case models.UploadedFile:
		candidates = []string{v.URL, v.Path, v.OriginalName}
	case map[string]any:
		for _, key := range []string{"url", "path", "originalName"} {
			s, _ := v[key].(string)
			candidates = append(candidates, s)
		}
	case string:
		candidates = []string{v}
	}

	for _, candidate := range candidates {
		if candidate != "" {
			return candidate
		}
	}
	return fileFallback
}
