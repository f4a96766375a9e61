package validators

import (
	"errors"

	"github.com/MKhiriev/go-form-keeper/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle              = errors.New("form title is required")
	ErrInvalidFormStatus       = errors.New("invalid form status")
	ErrInvalidFieldName        = errors.New("field name may contain only lowercase letters, digits and underscores")
	ErrEmptyFieldLabel         = errors.New("field label is required")
	ErrInvalidFieldType        = errors.New("invalid field type")
	ErrDuplicateFieldName      = errors.New("duplicate field name")
	ErrMissingOptions          = errors.New("choice field requires at least one option")
	ErrInvalidPattern          = errors.New("invalid validation pattern")
	ErrConditionalTooDeep      = errors.New("conditional fields are nested too deep")
	ErrNoFieldsToUpdate        = errors.New("at least one field must be provided for update")
	ErrInvalidSubmissionStatus = errors.New("invalid submission status")
)

// ValidationError carries every failed answer rule of one submission.
// Its message is the message of the first failure.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0].Message
}
