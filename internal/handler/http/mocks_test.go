package http

import (
	"context"
	"io"

	"github.com/MKhiriev/go-form-keeper/internal/service"
	"github.com/MKhiriev/go-form-keeper/models"
)

// ---- Mock: FormService ----

type mockFormSvc struct {
	createFn    func(ctx context.Context, form models.Form) (models.Form, error)
	getFn       func(ctx context.Context, id string) (models.Form, error)
	getPublicFn func(ctx context.Context, id string) (models.Form, error)
	listFn      func(ctx context.Context, query models.ListQuery) (models.Page[models.Form], error)
	updateFn    func(ctx context.Context, id string, update models.FormUpdate) (models.Form, error)
	reorderFn   func(ctx context.Context, id string, orders map[string]int) (models.Form, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (m *mockFormSvc) Create(ctx context.Context, form models.Form) (models.Form, error) {
	if m.createFn != nil {
		return m.createFn(ctx, form)
	}
	return form, nil
}
func (m *mockFormSvc) Get(ctx context.Context, id string) (models.Form, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Form{ID: id}, nil
}
func (m *mockFormSvc) GetPublic(ctx context.Context, id string) (models.Form, error) {
	if m.getPublicFn != nil {
		return m.getPublicFn(ctx, id)
	}
	return models.Form{ID: id, Status: models.FormStatusActive}, nil
}
func (m *mockFormSvc) List(ctx context.Context, query models.ListQuery) (models.Page[models.Form], error) {
	if m.listFn != nil {
		return m.listFn(ctx, query)
	}
	return models.Page[models.Form]{Data: []models.Form{}}, nil
}
func (m *mockFormSvc) Update(ctx context.Context, id string, update models.FormUpdate) (models.Form, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return models.Form{ID: id}, nil
}
func (m *mockFormSvc) Reorder(ctx context.Context, id string, orders map[string]int) (models.Form, error) {
	if m.reorderFn != nil {
		return m.reorderFn(ctx, id, orders)
	}
	return models.Form{ID: id}, nil
}
func (m *mockFormSvc) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ---- Mock: SubmissionService ----

type mockSubmissionSvc struct {
	submitFn func(ctx context.Context, request service.SubmitRequest) (models.Submission, error)
	getFn    func(ctx context.Context, formID, id string) (models.Submission, error)
	listFn   func(ctx context.Context, formID string, query models.ListQuery) (models.Page[models.Submission], error)
	updateFn func(ctx context.Context, formID, id string, update models.SubmissionUpdate) (models.Submission, error)
	deleteFn func(ctx context.Context, formID, id string) error
	statsFn  func(ctx context.Context, formID string) (models.SubmissionStats, error)
}

func (m *mockSubmissionSvc) Submit(ctx context.Context, request service.SubmitRequest) (models.Submission, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, request)
	}
	return models.Submission{FormID: request.FormID}, nil
}
func (m *mockSubmissionSvc) Get(ctx context.Context, formID, id string) (models.Submission, error) {
	if m.getFn != nil {
		return m.getFn(ctx, formID, id)
	}
	return models.Submission{ID: id, FormID: formID}, nil
}
func (m *mockSubmissionSvc) List(ctx context.Context, formID string, query models.ListQuery) (models.Page[models.Submission], error) {
	if m.listFn != nil {
		return m.listFn(ctx, formID, query)
	}
	return models.Page[models.Submission]{Data: []models.Submission{}}, nil
}
func (m *mockSubmissionSvc) Update(ctx context.Context, formID, id string, update models.SubmissionUpdate) (models.Submission, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, formID, id, update)
	}
	return models.Submission{ID: id, FormID: formID}, nil
}
func (m *mockSubmissionSvc) Delete(ctx context.Context, formID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, formID, id)
	}
	return nil
}
func (m *mockSubmissionSvc) Stats(ctx context.Context, formID string) (models.SubmissionStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, formID)
	}
	return models.SubmissionStats{}, nil
}

// ---- Mock: ExportService ----

type mockExportSvc struct {
	exportFn    func(ctx context.Context, formID string) (models.Export, error)
	exportCSVFn func(ctx context.Context, formID string, w io.Writer) error
}

func (m *mockExportSvc) Export(ctx context.Context, formID string) (models.Export, error) {
	if m.exportFn != nil {
		return m.exportFn(ctx, formID)
	}
	return models.Export{}, nil
}
func (m *mockExportSvc) ExportCSV(ctx context.Context, formID string, w io.Writer) error {
	if m.exportCSVFn != nil {
		return m.exportCSVFn(ctx, formID, w)
	}
	return nil
}

// ---- Mock: AppInfoService ----

type mockAppInfoSvc struct{}

func (m *mockAppInfoSvc) GetAppVersion(_ context.Context) string {
	return "test-version"
}
func (m *mockAppInfoSvc) GetVersionInfo(_ context.Context) models.VersionInfo {
	return models.VersionInfo{Version: "test-version", BuildCommit: "abc123"}
}
