package service

import "errors"

var (
	ErrFormNotFound       = errors.New("form not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrFormNotActive is returned when a draft or archived form is opened
	// publicly or receives a submission.
	ErrFormNotActive = errors.New("form is not accepting submissions")

	// ErrDuplicateSubmission is returned when a form that disallows multiple
	// submissions already has one from the same IP address.
	ErrDuplicateSubmission = errors.New("a submission from this address already exists")

	ErrNoSubmissions = errors.New("no submissions to export")

	ErrEmptyReorder = errors.New("no field orders provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
