// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// SubmissionStatus is the review state of a submission.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusReviewed SubmissionStatus = "reviewed"
	SubmissionStatusArchived SubmissionStatus = "archived"
)

// IsValid reports whether s is a known submission status.
func (s SubmissionStatus) IsValid() bool {
	return s == SubmissionStatusPending || s == SubmissionStatusReviewed || s == SubmissionStatusArchived
}

// SubmissionMetadata describes where a submission came from.
type SubmissionMetadata struct {
	IPAddress   string    `json:"ipAddress"`
	UserAgent   string    `json:"userAgent"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Submission is one set of answers to a form.
//
// Answers maps a field name to a scalar, a list of scalars, an uploaded file
// object or a list of file objects.
type Submission struct {
	ID          string             `json:"id"`
	FormID      string             `json:"formId"`
	FormVersion int                `json:"formVersion"`
	Answers     map[string]any     `json:"answers"`
	Metadata    SubmissionMetadata `json:"metadata"`
	Status      SubmissionStatus   `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Revision    int64              `json:"revision"`
}

// SubmissionUpdate is a partial update of a submission made by an operator.
type SubmissionUpdate struct {
	Status  *SubmissionStatus `json:"status,omitempty"`
	Answers map[string]any    `json:"answers,omitempty"`
}

// UploadedFile describes a stored upload attached to a file answer.
type UploadedFile struct {
	FieldName    string `json:"fieldname,omitempty"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
	URL          string `json:"url,omitempty"`
}

// FileUpload is an uploaded file received with a submission, before it is stored.
type FileUpload struct {
	FieldName    string
	OriginalName string
	MimeType     string
	Size         int64
	Body         io.Reader
}

// SubmissionStats counts the submissions of a form by status.
type SubmissionStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
	Archived int `json:"archived"`
}
