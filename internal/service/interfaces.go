package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-form-keeper/models"
)

type FormService interface {
	Create(ctx context.Context, form models.Form) (models.Form, error)
	Get(ctx context.Context, id string) (models.Form, error)
	// GetPublic returns the form only while it is active.
	GetPublic(ctx context.Context, id string) (models.Form, error)
	List(ctx context.Context, query models.ListQuery) (models.Page[models.Form], error)
	Update(ctx context.Context, id string, update models.FormUpdate) (models.Form, error)
	// Reorder sets the display order of the fields named by id.
	Reorder(ctx context.Context, id string, orders map[string]int) (models.Form, error)
	Delete(ctx context.Context, id string) error
}

type SubmissionService interface {
	Submit(ctx context.Context, request SubmitRequest) (models.Submission, error)
	Get(ctx context.Context, formID, id string) (models.Submission, error)
	List(ctx context.Context, formID string, query models.ListQuery) (models.Page[models.Submission], error)
	Update(ctx context.Context, formID, id string, update models.SubmissionUpdate) (models.Submission, error)
	Delete(ctx context.Context, formID, id string) error
	Stats(ctx context.Context, formID string) (models.SubmissionStats, error)
}

type ExportService interface {
	Export(ctx context.Context, formID string) (models.Export, error)
	ExportCSV(ctx context.Context, formID string, w io.Writer) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionInfo
}
