// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

// localUploadStorage writes uploads to <dir>/<formId>/<generated name><ext>
// and serves them under baseURL.
type localUploadStorage struct {
	dir     string
	baseURL string
	ids     utils.IDGenerator
}

// NewLocalUploadStorage constructs an [UploadStorage] on the local disk.
func NewLocalUploadStorage(dir, baseURL string, ids utils.IDGenerator, log *logger.Logger) (UploadStorage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		log.Err(err).Str("func", "NewLocalUploadStorage").Str("dir", abs).Msg("error creating uploads directory")
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	return &localUploadStorage{
		dir:     abs,
		baseURL: strings.TrimRight(baseURL, "/"),
		ids:     ids,
	}, nil
}

func (l *localUploadStorage) Save(ctx context.Context, upload UploadRequest) (models.UploadedFile, error) {
	log := logger.FromContext(ctx)

	if err := validateDocumentID(upload.FormID); err != nil {
		return models.UploadedFile{}, err
	}

	filename := uploadFileName(l.ids, upload.OriginalName)
	dir := filepath.Join(l.dir, upload.FormID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	target := filepath.Join(dir, filename)
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	written, err := io.Copy(file, upload.Body)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		log.Err(err).
			Str("func", "localUploadStorage.Save").
			Str("form_id", upload.FormID).
			Str("field", upload.FieldName).
			Msg("failed to write upload")
		_ = os.Remove(target)
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	return models.UploadedFile{
		FieldName:    upload.FieldName,
		Filename:     filename,
		OriginalName: upload.OriginalName,
		MimeType:     upload.MimeType,
		Size:         written,
		Path:         target,
		URL:          l.baseURL + "/" + path.Join(upload.FormID, filename),
	}, nil
}

func (l *localUploadStorage) Remove(ctx context.Context, formID, target string) error {
	if err := validateDocumentID(formID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUploadPath, err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUploadPath, err)
	}

	// only <dir>/<formID>/<file> belongs to the form
	rel, err := filepath.Rel(filepath.Join(l.dir, formID), abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return fmt.Errorf("%w: %s", ErrInvalidUploadPath, target)
	}

	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Err(err).
			Str("func", "localUploadStorage.Remove").
			Str("path", abs).
			Msg("failed to remove upload")
		return fmt.Errorf("%w: %w", ErrRemovingFile, err)
	}

	return nil
}

// uploadFileName keeps the extension of the client file name only.
func uploadFileName(ids utils.IDGenerator, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 16 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return ids.Generate() + ext
}
