package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-form-keeper/models"
)

type formVersionStorage struct {
	documents DocumentStore
}

// NewFormVersionStorage constructs the append-only [FormVersionStorage].
func NewFormVersionStorage(documents DocumentStore) FormVersionStorage {
	return &formVersionStorage{documents: documents}
}

// Create stores the snapshot under an id derived from (formId, version),
// so the store rejects a second snapshot of the same version.
func (f *formVersionStorage) Create(ctx context.Context, version models.FormVersion) error {
	version.ID = FormVersionID(version.FormID, version.Version)

	payload, err := ToDocument(version)
	if err != nil {
		return err
	}

	_, err = f.documents.Create(ctx, CollectionFormVersions, payload)
	return err
}

// FormVersionID is the document id of the snapshot of formID at version.
func FormVersionID(formID string, version int) string {
	return fmt.Sprintf("%s-v%d", formID, version)
}
