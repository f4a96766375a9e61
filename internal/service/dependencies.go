// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/models"
)

//go:generate mockgen -source=dependencies.go -destination=../mock/service_dependencies_mock.go -package=mock

// FileCleaner removes stored uploads of one form that are no longer
// referenced. Clean must not block the caller; failures are the cleaner's to
// report.
type FileCleaner interface {
	Clean(ctx context.Context, formID string, paths []string)
}

// Notifier broadcasts form events to realtime subscribers.
type Notifier interface {
	Notify(ctx context.Context, event models.FormEvent) error
}

// SubmitRequest is a public submission before it is validated and stored.
type SubmitRequest struct {
	FormID   string
	Answers  map[string]any
	Uploads  []models.FileUpload
	Metadata models.SubmissionMetadata
}
