package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/models"
)

type exportService struct {
	formStorage       store.FormStorage
	submissionStorage store.SubmissionStorage
	projector         *ExportProjector

	logger *logger.Logger
}

func NewExportService(formStorage store.FormStorage, submissionStorage store.SubmissionStorage, logger *logger.Logger) ExportService {
	return &exportService{
		formStorage:       formStorage,
		submissionStorage: submissionStorage,
		projector:         NewExportProjector(),
		logger:            logger,
	}
}

func (e *exportService) Export(ctx context.Context, formID string) (models.Export, error) {
	form, err := e.formStorage.Get(ctx, formID)
	if err != nil {
		return models.Export{}, formError(err)
	}

	submissions, err := e.submissionStorage.ListAll(ctx, formID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "exportService.Export").
			Str("form_id", formID).
			Msg("failed to load submissions")
		return models.Export{}, err
	}
	if len(submissions) == 0 {
		return models.Export{}, ErrNoSubmissions
	}

	return e.projector.Project(form, submissions), nil
}

// ExportCSV writes the export as CSV: one header line, then one line per
// submission in column order.
func (e *exportService) ExportCSV(ctx context.Context, formID string, w io.Writer) error {
	export, err := e.Export(ctx, formID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err = writer.Write(export.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(export.Columns))
	for _, row := range export.Rows {
		for i, column := range export.Columns {
			record[i] = row[column]
		}
		if err = writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
