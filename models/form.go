// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FormStatus is the publication state of a form.
type FormStatus string

const (
	FormStatusDraft    FormStatus = "draft"
	FormStatusActive   FormStatus = "active"
	FormStatusArchived FormStatus = "archived"
)

// IsValid reports whether s is a known form status.
func (s FormStatus) IsValid() bool {
	return s == FormStatusDraft || s == FormStatusActive || s == FormStatusArchived
}

// FormSettings holds presentation and submission policy options of a form.
type FormSettings struct {
	SubmitButtonText string `json:"submitButtonText,omitempty"`
	SuccessMessage   string `json:"successMessage,omitempty"`

	// AllowMultipleSubmissions controls whether one IP address may submit
	// more than once. Nil is treated as true.
	AllowMultipleSubmissions *bool `json:"allowMultipleSubmissions,omitempty"`
}

// AllowsMultipleSubmissions reports the effective value of AllowMultipleSubmissions.
func (s FormSettings) AllowsMultipleSubmissions() bool {
	return s.AllowMultipleSubmissions == nil || *s.AllowMultipleSubmissions
}

// Form is an operator-defined schema that public users submit answers against.
type Form struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      FormStatus   `json:"status"`
	Fields      []Field      `json:"fields"`
	Version     int          `json:"version"`
	Settings    FormSettings `json:"settings"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	// Revision is the store-level optimistic concurrency counter.
	Revision int64 `json:"revision"`
}

// FormUpdate is a partial update of a form. Nil members are left untouched.
type FormUpdate struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *FormStatus   `json:"status,omitempty"`
	Fields      []Field       `json:"fields,omitempty"`
	Settings    *FormSettings `json:"settings,omitempty"`
}

// IsEmpty reports whether the update carries no changes at all.
func (u FormUpdate) IsEmpty() bool {
	return u.Status == nil && !u.IsStructural()
}

// IsStructural reports whether the update touches anything besides the status.
// Structural updates bump the form version and snapshot the previous state.
func (u FormUpdate) IsStructural() bool {
	return u.Title != nil || u.Description != nil || u.Fields != nil || u.Settings != nil
}

// FormVersion is an immutable snapshot of a form taken before a structural update.
type FormVersion struct {
	ID          string       `json:"id"`
	FormID      string       `json:"formId"`
	Version     int          `json:"version"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Fields      []Field      `json:"fields"`
	Settings    FormSettings `json:"settings"`
	ArchivedAt  time.Time    `json:"archivedAt"`
}

// FormEvent is broadcast to realtime subscribers when a form changes.
type FormEvent struct {
	Type       string     `json:"type"`
	FormID     string     `json:"formId"`
	Status     FormStatus `json:"status"`
	Title      string     `json:"title"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// Form event types.
const (
	FormEventChanged       = "form.changed"
	FormEventStatusChanged = "form.status_changed"
	FormEventDeleted       = "form.deleted"
)
