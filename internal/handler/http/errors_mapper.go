package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/service"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:      http.StatusBadRequest,
	ErrInvalidQuery:     http.StatusBadRequest,
	ErrInvalidMultipart: http.StatusBadRequest,

	service.ErrFormNotFound:          http.StatusNotFound,
	service.ErrSubmissionNotFound:    http.StatusNotFound,
	service.ErrNoSubmissions:         http.StatusNotFound,
	service.ErrFormNotActive:         http.StatusForbidden,
	service.ErrDuplicateSubmission:   http.StatusConflict,
	service.ErrEmptyReorder:          http.StatusBadRequest,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	validators.ErrEmptyTitle:              http.StatusBadRequest,
	validators.ErrInvalidFormStatus:       http.StatusBadRequest,
	validators.ErrInvalidFieldName:        http.StatusBadRequest,
	validators.ErrEmptyFieldLabel:         http.StatusBadRequest,
	validators.ErrInvalidFieldType:        http.StatusBadRequest,
	validators.ErrDuplicateFieldName:      http.StatusBadRequest,
	validators.ErrMissingOptions:          http.StatusBadRequest,
	validators.ErrInvalidPattern:          http.StatusBadRequest,
	validators.ErrConditionalTooDeep:      http.StatusBadRequest,
	validators.ErrNoFieldsToUpdate:        http.StatusBadRequest,
	validators.ErrInvalidSubmissionStatus: http.StatusBadRequest,

	store.ErrDocumentNotFound: http.StatusNotFound,
	store.ErrDocumentExists:   http.StatusConflict,
	store.ErrRevisionConflict: http.StatusConflict,
}

func statusFromError(err error) int {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse is the body of every failed request. Errors is set only for
// answer validation failures.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

// writeError logs err and answers with its mapped status. Server errors hide
// the underlying message from the client.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	response := errorResponse{Message: err.Error()}
	if status >= http.StatusInternalServerError {
		response.Message = http.StatusText(status)
	}

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		response.Message = validationErr.Error()
		response.Errors = validationErr.Errors
	}

	utils.WriteJSON(w, response, status)
}
