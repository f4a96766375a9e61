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
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
)

type formService struct {
	formStorage        store.FormStorage
	submissionStorage  store.SubmissionStorage
	formVersionStorage store.FormVersionStorage

	validator validators.Validator
	cleaner   FileCleaner
	notifier  Notifier

	ids   utils.IDGenerator
	locks *utils.KeyedMutex
	now   func() time.Time

	logger *logger.Logger
}

func NewFormService(
	formStorage store.FormStorage,
	submissionStorage store.SubmissionStorage,
	formVersionStorage store.FormVersionStorage,
	cleaner FileCleaner,
	notifier Notifier,
	logger *logger.Logger,
) FormService {
	return &formService{
		formStorage:        formStorage,
		submissionStorage:  submissionStorage,
		formVersionStorage: formVersionStorage,
		validator:          validators.NewFormValidator(),
		cleaner:            cleaner,
		notifier:           notifier,
		ids:                utils.NewUUIDGenerator(),
		locks:              utils.NewKeyedMutex(),
		now:                time.Now,
		logger:             logger,
	}
}

func (f *formService) Create(ctx context.Context, form models.Form) (models.Form, error) {
	if form.Status == "" {
		form.Status = models.FormStatusDraft
	}

	if err := f.validator.Validate(ctx, form); err != nil {
		return models.Form{}, err
	}

	form.ID = ""
	form.Version = 1
	form.Revision = 0
	form.Fields = materializeFields(form.Fields, nil, f.ids)

	created, err := f.formStorage.Create(ctx, form)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "formService.Create").
			Msg("failed to store form")
		return models.Form{}, err
	}

	created.Fields = models.SortFieldsByOrder(created.Fields)
	return created, nil
}

func (f *formService) Get(ctx context.Context, id string) (models.Form, error) {
	form, err := f.formStorage.Get(ctx, id)
	if err != nil {
		return models.Form{}, formError(err)
	}
	return form, nil
}

func (f *formService) GetPublic(ctx context.Context, id string) (models.Form, error) {
	form, err := f.Get(ctx, id)
	if err != nil {
		return models.Form{}, err
	}
	if form.Status != models.FormStatusActive {
		return models.Form{}, ErrFormNotActive
	}
	return form, nil
}

func (f *formService) List(ctx context.Context, query models.ListQuery) (models.Page[models.Form], error) {
	return f.formStorage.List(ctx, withDefaultSort(query))
}

func (f *formService) Update(ctx context.Context, id string, update models.FormUpdate) (models.Form, error) {
	log := logger.FromContext(ctx)

	if err := f.validator.Validate(ctx, update); err != nil {
		return models.Form{}, err
	}

	unlock := f.locks.Lock(id)
	defer unlock()

	current, err := f.formStorage.GetRaw(ctx, id)
	if err != nil {
		return models.Form{}, formError(err)
	}

	form := current
	if update.IsStructural() {
		f.snapshot(ctx, current)
		form.Version = current.Version + 1

		if update.Title != nil {
			form.Title = *update.Title
		}
		if update.Description != nil {
			form.Description = *update.Description
		}
		if update.Settings != nil {
			form.Settings = *update.Settings
		}
		if update.Fields != nil {
			form.Fields = materializeFields(update.Fields, current.Fields, f.ids)
		}
	}
	if update.Status != nil {
		form.Status = *update.Status
	}

	updated, err := f.formStorage.Update(ctx, form)
	if err != nil {
		log.Err(err).
			Str("func", "formService.Update").
			Str("form_id", id).
			Int64("revision", current.Revision).
			Msg("failed to update form")
		return models.Form{}, formError(err)
	}

	eventType := models.FormEventChanged
	if !update.IsStructural() {
		eventType = models.FormEventStatusChanged
	}
	f.notify(ctx, eventType, updated)

	updated.Fields = models.SortFieldsByOrder(updated.Fields)
	return updated, nil
}

func (f *formService) Reorder(ctx context.Context, id string, orders map[string]int) (models.Form, error) {
	if len(orders) == 0 {
		return models.Form{}, ErrEmptyReorder
	}

	unlock := f.locks.Lock(id)
	defer unlock()

	form, err := f.formStorage.GetRaw(ctx, id)
	if err != nil {
		return models.Form{}, formError(err)
	}

	form.Fields = reorderFields(form.Fields, orders)

	updated, err := f.formStorage.Update(ctx, form)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "formService.Reorder").
			Str("form_id", id).
			Msg("failed to store reordered fields")
		return models.Form{}, formError(err)
	}

	f.notify(ctx, models.FormEventChanged, updated)
	return updated, nil
}

// Delete removes the form and the files of its submissions. The submissions
// themselves are kept.
func (f *formService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	unlock := f.locks.Lock(id)
	defer unlock()

	form, err := f.formStorage.GetRaw(ctx, id)
	if err != nil {
		return formError(err)
	}

	submissions, err := f.submissionStorage.ListAll(ctx, id)
	if err != nil {
		log.Err(err).
			Str("func", "formService.Delete").
			Str("form_id", id).
			Msg("failed to list submissions of deleted form")
		return err
	}

	if err = f.formStorage.Delete(ctx, id); err != nil {
		log.Err(err).
			Str("func", "formService.Delete").
			Str("form_id", id).
			Msg("failed to delete form")
		return err
	}

	var paths []string
	for _, submission := range submissions {
		paths = append(paths, uploadedPaths(submission.Answers)...)
	}
	if len(paths) > 0 {
		f.cleaner.Clean(ctx, id, paths)
	}

	f.notify(ctx, models.FormEventDeleted, form)
	return nil
}

// snapshot archives the state of form before a structural update. Failures
// are logged and do not stop the update.
func (f *formService) snapshot(ctx context.Context, form models.Form) {
	err := f.formVersionStorage.Create(ctx, models.FormVersion{
		FormID:      form.ID,
		Version:     form.Version,
		Title:       form.Title,
		Description: form.Description,
		Fields:      form.Fields,
		Settings:    form.Settings,
		ArchivedAt:  f.now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "formService.snapshot").
			Str("form_id", form.ID).
			Int("version", form.Version).
			Msg("failed to store form version")
	}
}

func (f *formService) notify(ctx context.Context, eventType string, form models.Form) {
	err := f.notifier.Notify(ctx, models.FormEvent{
		Type:       eventType,
		FormID:     form.ID,
		Status:     form.Status,
		Title:      form.Title,
		OccurredAt: f.now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "formService.notify").
			Str("form_id", form.ID).
			Str("event", eventType).
			Msg("failed to notify subscribers")
	}
}

// formError maps a missing document to ErrFormNotFound.
func formError(err error) error {
	if errors.Is(err, store.ErrDocumentNotFound) {
		return fmt.Errorf("%w: %w", ErrFormNotFound, err)
	}
	return err
}

// withDefaultSort lists newest first unless the caller chose an order.
func withDefaultSort(query models.ListQuery) models.ListQuery {
	if query.SortBy == "" {
		query.SortBy = models.DocumentKeyCreatedAt
		if query.Order == "" {
			query.Order = models.OrderDesc
		}
	}
	return query
}
