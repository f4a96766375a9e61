// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
)

type submissionService struct {
	formStorage       store.FormStorage
	submissionStorage store.SubmissionStorage
	uploadStorage     store.UploadStorage

	validator       validators.Validator
	schemaValidator validators.Validator
	cleaner         FileCleaner

	now func() time.Time

	logger *logger.Logger
}

func NewSubmissionService(
	formStorage store.FormStorage,
	submissionStorage store.SubmissionStorage,
	uploadStorage store.UploadStorage,
	cleaner FileCleaner,
	logger *logger.Logger,
) SubmissionService {
	return &submissionService{
		formStorage:       formStorage,
		submissionStorage: submissionStorage,
		uploadStorage:     uploadStorage,
		validator:         validators.NewFormValidator(),
		schemaValidator:   validators.NewSchemaValidator(),
		cleaner:           cleaner,
		now:               time.Now,
		logger:            logger,
	}
}

// Submit stores a public submission. The form must be active; values sent
// for file fields are dropped, and uploads are saved and merged into the
// answers by field name before the answers are validated. Once an upload is saved, any failure hands the saved files to
// the cleaner.
func (s *submissionService) Submit(ctx context.Context, request SubmitRequest) (models.Submission, error) {
	log := logger.FromContext(ctx)

	form, err := s.formStorage.GetRaw(ctx, request.FormID)
	if err != nil {
		return models.Submission{}, formError(err)
	}
	if form.Status != models.FormStatusActive {
		return models.Submission{}, ErrFormNotActive
	}

	if !form.Settings.AllowsMultipleSubmissions() && request.Metadata.IPAddress != "" {
		exists, err := s.submissionStorage.ExistsFromIP(ctx, form.ID, request.Metadata.IPAddress)
		if err != nil {
			return models.Submission{}, err
		}
		if exists {
			return models.Submission{}, ErrDuplicateSubmission
		}
	}

	files, err := s.saveUploads(ctx, form.ID, request.Uploads)
	if err != nil {
		return models.Submission{}, err
	}

	submission, err := s.create(ctx, form, request, files)
	if err != nil {
		if paths := filePaths(files); len(paths) > 0 {
			s.cleaner.Clean(ctx, form.ID, paths)
		}
		return models.Submission{}, err
	}

	log.Info().
		Str("func", "submissionService.Submit").
		Str("form_id", form.ID).
		Str("submission_id", submission.ID).
		Int("files", len(files)).
		Msg("submission stored")

	return submission, nil
}

func (s *submissionService) create(ctx context.Context, form models.Form, request SubmitRequest, files []models.UploadedFile) (models.Submission, error) {
	answers := mergeUploads(withoutFileAnswers(form.Fields, request.Answers), files)

	err := s.schemaValidator.Validate(ctx, validators.Answers{Form: form, Values: answers})
	if err != nil {
		return models.Submission{}, err
	}

	metadata := request.Metadata
	metadata.SubmittedAt = s.now().UTC()

	submission, err := s.submissionStorage.Create(ctx, models.Submission{
		FormID:      form.ID,
		FormVersion: form.Version,
		Answers:     answers,
		Metadata:    metadata,
		Status:      models.SubmissionStatusPending,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "submissionService.create").
			Str("form_id", form.ID).
			Msg("failed to store submission")
		return models.Submission{}, err
	}
	return submission, nil
}

// saveUploads stores every upload. When one fails, the ones already saved
// are handed to the cleaner.
func (s *submissionService) saveUploads(ctx context.Context, formID string, uploads []models.FileUpload) ([]models.UploadedFile, error) {
	files := make([]models.UploadedFile, 0, len(uploads))

	for _, upload := range uploads {
		file, err := s.uploadStorage.Save(ctx, store.UploadRequest{
			FormID:       formID,
			FieldName:    upload.FieldName,
			OriginalName: upload.OriginalName,
			MimeType:     upload.MimeType,
			Size:         upload.Size,
			Body:         upload.Body,
		})
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "submissionService.saveUploads").
				Str("form_id", formID).
				Str("field", upload.FieldName).
				Msg("failed to save upload")

			if paths := filePaths(files); len(paths) > 0 {
				s.cleaner.Clean(ctx, formID, paths)
			}
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func (s *submissionService) Get(ctx context.Context, formID, id string) (models.Submission, error) {
	submission, err := s.submissionStorage.Get(ctx, id)
	if err != nil {
		return models.Submission{}, submissionError(err)
	}
	if submission.FormID != formID {
		return models.Submission{}, ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *submissionService) List(ctx context.Context, formID string, query models.ListQuery) (models.Page[models.Submission], error) {
	if _, err := s.formStorage.GetRaw(ctx, formID); err != nil {
		return models.Page[models.Submission]{}, formError(err)
	}
	return s.submissionStorage.List(ctx, formID, withDefaultSort(query))
}

// Update changes the status and/or the answers of a submission. New answers
// are validated against the current form.
func (s *submissionService) Update(ctx context.Context, formID, id string, update models.SubmissionUpdate) (models.Submission, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Submission{}, err
	}

	submission, err := s.Get(ctx, formID, id)
	if err != nil {
		return models.Submission{}, err
	}

	if update.Answers != nil {
		form, err := s.formStorage.GetRaw(ctx, formID)
		if err != nil {
			return models.Submission{}, formError(err)
		}
		err = s.schemaValidator.Validate(ctx, validators.Answers{Form: form, Values: update.Answers})
		if err != nil {
			return models.Submission{}, err
		}
		submission.Answers = update.Answers
	}
	if update.Status != nil {
		submission.Status = *update.Status
	}

	updated, err := s.submissionStorage.Update(ctx, submission)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "submissionService.Update").
			Str("form_id", formID).
			Str("submission_id", id).
			Msg("failed to update submission")
		return models.Submission{}, submissionError(err)
	}
	return updated, nil
}

// Delete removes the submission and hands its files to the cleaner.
func (s *submissionService) Delete(ctx context.Context, formID, id string) error {
	submission, err := s.Get(ctx, formID, id)
	if err != nil {
		return err
	}

	if err = s.submissionStorage.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "submissionService.Delete").
			Str("form_id", formID).
			Str("submission_id", id).
			Msg("failed to delete submission")
		return err
	}

	if paths := uploadedPaths(submission.Answers); len(paths) > 0 {
		s.cleaner.Clean(ctx, submission.FormID, paths)
	}
	return nil
}

func (s *submissionService) Stats(ctx context.Context, formID string) (models.SubmissionStats, error) {
	if _, err := s.formStorage.GetRaw(ctx, formID); err != nil {
		return models.SubmissionStats{}, formError(err)
	}

	submissions, err := s.submissionStorage.ListAll(ctx, formID)
	if err != nil {
		return models.SubmissionStats{}, err
	}

	stats := models.SubmissionStats{Total: len(submissions)}
	for _, submission := range submissions {
		switch submission.Status {
		case models.SubmissionStatusPending:
			stats.Pending++
		case models.SubmissionStatusReviewed:
			stats.Reviewed++
		case models.SubmissionStatusArchived:
			stats.Archived++
		}
	}
	return stats, nil
}

// mergeUploads returns a copy of answers with the uploaded files set on
// their fields. Several files for one field become an array.
func mergeUploads(answers map[string]any, files []models.UploadedFile) map[string]any {
	merged := make(map[string]any, len(answers)+len(files))
	for name, value := range answers {
		merged[name] = value
	}

	byField := make(map[string][]models.UploadedFile)
	var order []string
	for _, file := range files {
		if _, seen := byField[file.FieldName]; !seen {
			order = append(order, file.FieldName)
		}
		byField[file.FieldName] = append(byField[file.FieldName], file)
	}

	for _, name := range order {
		if group := byField[name]; len(group) == 1 {
			merged[name] = group[0]
		} else {
			merged[name] = group
		}
	}
	return merged
}

func filePaths(files []models.UploadedFile) []string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	return paths
}

func submissionError(err error) error {
	if errors.Is(err, store.ErrDocumentNotFound) {
		return fmt.Errorf("%w: %w", ErrSubmissionNotFound, err)
	}
	return err
}
