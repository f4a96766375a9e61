// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-form-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentStore persists schemaless documents grouped in collections.
//
// Every stored document carries the reserved keys id, createdAt, updatedAt
// and revision. Implementations serialize writes to one document id and
// detect concurrent writers through the revision counter.
type DocumentStore interface {
	// Create stores payload as a new document. A caller-supplied "id" is
	// honoured and must be unused ([ErrDocumentExists]); otherwise a
	// time-ordered id is generated.
	Create(ctx context.Context, collection string, payload models.Document) (models.Document, error)

	// Get returns the document or [ErrDocumentNotFound].
	Get(ctx context.Context, collection, id string) (models.Document, error)

	// Update shallow-merges patch into the stored document and bumps its
	// revision. When patch carries "revision", it must equal the stored one
	// ([ErrRevisionConflict]).
	Update(ctx context.Context, collection, id string, patch models.Document) (models.Document, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// List filters, sorts and pages a collection.
	List(ctx context.Context, collection string, opts models.ListOptions) (models.Page[models.Document], error)
}

// FormStorage is the typed view of the forms collection.
type FormStorage interface {
	Create(ctx context.Context, form models.Form) (models.Form, error)
	// Get returns the form with fields sorted by display order.
	Get(ctx context.Context, id string) (models.Form, error)
	// GetRaw returns the form with fields in declaration order.
	GetRaw(ctx context.Context, id string) (models.Form, error)
	// Update persists the mutable members of form, expecting form.Revision
	// to be the stored revision.
	Update(ctx context.Context, form models.Form) (models.Form, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query models.ListQuery) (models.Page[models.Form], error)
}

// SubmissionStorage is the typed view of the submissions collection.
type SubmissionStorage interface {
	Create(ctx context.Context, submission models.Submission) (models.Submission, error)
	Get(ctx context.Context, id string) (models.Submission, error)
	// Update persists status and answers, expecting submission.Revision
	// to be the stored revision.
	Update(ctx context.Context, submission models.Submission) (models.Submission, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, formID string, query models.ListQuery) (models.Page[models.Submission], error)
	// ListAll returns every submission of a form, oldest first.
	ListAll(ctx context.Context, formID string) ([]models.Submission, error)
	// ExistsFromIP reports whether the form already has a submission from ip.
	ExistsFromIP(ctx context.Context, formID, ip string) (bool, error)
}

// FormVersionStorage appends form snapshots. It has no read path.
type FormVersionStorage interface {
	// Create stores the snapshot; a second snapshot of the same
	// (formId, version) pair fails with [ErrDocumentExists].
	Create(ctx context.Context, version models.FormVersion) error
}

// UploadRequest carries one uploaded file to an [UploadStorage].
type UploadRequest struct {
	FormID       string
	FieldName    string
	OriginalName string
	MimeType     string
	Size         int64
	Body         io.Reader
}

// UploadStorage keeps the bytes of uploaded files.
type UploadStorage interface {
	// Save stores the upload and describes where it landed.
	Save(ctx context.Context, upload UploadRequest) (models.UploadedFile, error)
	// Remove deletes an upload of formID by the path Save returned. Paths
	// outside the form's own uploads are rejected with ErrInvalidUploadPath.
	// Removing a missing upload is not an error.
	Remove(ctx context.Context, formID, path string) error
}

// ErrorClassificator classifies driver errors for retry decisions.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
