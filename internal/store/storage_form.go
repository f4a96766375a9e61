// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// formStorage maps [models.Form] onto the forms collection of a
// [DocumentStore].
type formStorage struct {
	documents DocumentStore
	logger    *logger.Logger
}

// NewFormStorage constructs a [FormStorage] on top of documents.
func NewFormStorage(documents DocumentStore, logger *logger.Logger) FormStorage {
	return &formStorage{documents: documents, logger: logger}
}

func (f *formStorage) Create(ctx context.Context, form models.Form) (models.Form, error) {
	payload, err := ToDocument(form)
	if err != nil {
		return models.Form{}, err
	}

	doc, err := f.documents.Create(ctx, CollectionForms, payload)
	if err != nil {
		return models.Form{}, err
	}

	return formFromDocument(doc)
}

func (f *formStorage) Get(ctx context.Context, id string) (models.Form, error) {
	form, err := f.GetRaw(ctx, id)
	if err != nil {
		return models.Form{}, err
	}

	form.Fields = models.SortFieldsByOrder(form.Fields)
	return form, nil
}

func (f *formStorage) GetRaw(ctx context.Context, id string) (models.Form, error) {
	doc, err := f.documents.Get(ctx, CollectionForms, id)
	if err != nil {
		return models.Form{}, err
	}

	return formFromDocument(doc)
}

func (f *formStorage) Update(ctx context.Context, form models.Form) (models.Form, error) {
	// nested values must be plain JSON before they reach the store
	patch, err := ToDocument(map[string]any{
		"title":                    form.Title,
		"description":              form.Description,
		"status":                   form.Status,
		"fields":                   form.Fields,
		"version":                  form.Version,
		"settings":                 form.Settings,
		models.DocumentKeyRevision: form.Revision,
	})
	if err != nil {
		return models.Form{}, err
	}

	doc, err := f.documents.Update(ctx, CollectionForms, form.ID, patch)
	if err != nil {
		return models.Form{}, err
	}

	return formFromDocument(doc)
}

func (f *formStorage) Delete(ctx context.Context, id string) error {
	return f.documents.Delete(ctx, CollectionForms, id)
}

func (f *formStorage) List(ctx context.Context, query models.ListQuery) (models.Page[models.Form], error) {
	page, err := f.documents.List(ctx, CollectionForms, listOptions(query, nil))
	if err != nil {
		return models.Page[models.Form]{}, err
	}

	forms := make([]models.Form, 0, len(page.Data))
	for _, doc := range page.Data {
		form, err := formFromDocument(doc)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "formStorage.List").
				Str("form_id", doc.ID()).
				Msg("failed to decode stored form")
			return models.Page[models.Form]{}, err
		}
		form.Fields = models.SortFieldsByOrder(form.Fields)
		forms = append(forms, form)
	}

	return models.Page[models.Form]{Data: forms, Pagination: page.Pagination}, nil
}

func formFromDocument(doc models.Document) (models.Form, error) {
	var form models.Form
	if err := FromDocument(doc, &form); err != nil {
		return models.Form{}, fmt.Errorf("form %s: %w", doc.ID(), err)
	}
	if form.Fields == nil {
		form.Fields = []models.Field{}
	}
	return form, nil
}

// listOptions converts a service level query into store options. filter
// carries the equality filters implied by the caller (e.g. the parent form).
func listOptions(query models.ListQuery, filter map[string]string) models.ListOptions {
	opts := models.ListOptions{
		Filter: make(map[string]string, len(filter)+1),
		Page:   query.Page,
		Limit:  query.Limit,
		SortBy: query.SortBy,
		Order:  query.Order,
	}
	for k, v := range filter {
		opts.Filter[k] = v
	}
	if query.Status != "" {
		opts.Filter["status"] = query.Status
	}
	return opts
}
