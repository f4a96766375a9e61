package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

func TestFileDocumentStore_Layout(t *testing.T) {
	ctx := testContext()
	root := t.TempDir()

	s, err := NewFileDocumentStore(root, &sequenceIDs{}, logger.Nop())
	require.NoError(t, err)

	form, err := s.Create(ctx, CollectionForms, models.Document{"title": "A"})
	require.NoError(t, err)
	sub, err := s.Create(ctx, CollectionSubmissions, models.Document{"formId": form.ID()})
	require.NoError(t, err)
	version, err := s.Create(ctx, CollectionFormVersions, models.Document{"id": form.ID() + "-v1", "formId": form.ID()})
	require.NoError(t, err)
	other, err := s.Create(ctx, "audit_log", models.Document{"event": "x"})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "forms", form.ID(), "form.json"))
	assert.FileExists(t, filepath.Join(root, "forms", form.ID(), "submissions", sub.ID()+".json"))
	assert.FileExists(t, filepath.Join(root, "forms", form.ID(), "versions", version.ID()+".json"))
	assert.FileExists(t, filepath.Join(root, "audit_log", other.ID()+".json"))

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Join(root, "forms", form.ID()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestFileDocumentStore_DeleteFormRemovesEmptyDirectory(t *testing.T) {
	ctx := testContext()
	root := t.TempDir()

	s, err := NewFileDocumentStore(root, &sequenceIDs{}, logger.Nop())
	require.NoError(t, err)

	form, err := s.Create(ctx, CollectionForms, models.Document{"title": "A"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, CollectionForms, form.ID()))
	assert.NoDirExists(t, filepath.Join(root, "forms", form.ID()))
}

func TestFileDocumentStore_CorruptedFile(t *testing.T) {
	ctx := testContext()
	root := t.TempDir()

	s, err := NewFileDocumentStore(root, &sequenceIDs{}, logger.Nop())
	require.NoError(t, err)

	dir := filepath.Join(root, "forms", "broken")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "form.json"), []byte("{not json"), 0o644))

	_, err = s.Get(ctx, CollectionForms, "broken")
	require.ErrorIs(t, err, ErrDecodingDocument)

	_, err = s.List(ctx, CollectionForms, models.ListOptions{})
	require.ErrorIs(t, err, ErrDecodingDocument)
}
