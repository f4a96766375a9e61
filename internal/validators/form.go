package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-form-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldTitle            = "title"
	FieldStatus           = "status"
	FieldFields           = "fields"
	FieldAnswers          = "answers"
	FieldSubmissionStatus = "submission_status"
)

// MaxConditionalDepth bounds how deep conditional fields may nest.
const MaxConditionalDepth = 3

var fieldNameRegexp = regexp.MustCompile(`^[a-z0-9_]+$`)

// FormValidator checks the structure of forms and the shape of update
// requests before anything is persisted.
type FormValidator struct {
}

func NewFormValidator() Validator {
	return &FormValidator{}
}

func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Form:
		return v.validateForm(value, fields...)
	case *models.Form:
		return v.validateForm(*value, fields...)

	case models.FormUpdate:
		return v.validateFormUpdate(value, fields...)
	case *models.FormUpdate:
		return v.validateFormUpdate(*value, fields...)

	case models.SubmissionUpdate:
		return v.validateSubmissionUpdate(value, fields...)
	case *models.SubmissionUpdate:
		return v.validateSubmissionUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) validateForm(form models.Form, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldStatus, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(form.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldStatus:
			if !form.Status.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidFormStatus, form.Status)
			}
		case FieldFields:
			if err := validateFields(form.Fields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validateFormUpdate(update models.FormUpdate, fields ...string) error {
	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldStatus, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldStatus:
			if update.Status != nil && !update.Status.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidFormStatus, *update.Status)
			}
		case FieldFields:
			if update.Fields != nil {
				if err := validateFields(update.Fields); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validateSubmissionUpdate(update models.SubmissionUpdate, fields ...string) error {
	if update.Status == nil && update.Answers == nil {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		fields = []string{FieldSubmissionStatus}
	}

	for _, f := range fields {
		switch f {
		case FieldSubmissionStatus:
			if update.Status != nil && !update.Status.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidSubmissionStatus, *update.Status)
			}
		case FieldAnswers:
			// answers are checked against the form by SchemaValidator
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateFields checks every field of a form, conditional ones included.
// Names are unique case-insensitively across the whole tree.
func validateFields(fields []models.Field) error {
	seen := make(map[string]struct{})
	return walkFields(fields, 0, seen)
}

func walkFields(fields []models.Field, depth int, seen map[string]struct{}) error {
	if depth > MaxConditionalDepth {
		return fmt.Errorf("%w: more than %d levels", ErrConditionalTooDeep, MaxConditionalDepth)
	}

	for _, field := range fields {
		if err := validateField(field); err != nil {
			return err
		}

		key := strings.ToLower(field.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateFieldName, field.Name)
		}
		seen[key] = struct{}{}

		if len(field.ConditionalFields) > 0 {
			if err := walkFields(field.ConditionalFields, depth+1, seen); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateField(field models.Field) error {
	if !fieldNameRegexp.MatchString(field.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidFieldName, field.Name)
	}
	if strings.TrimSpace(field.Label) == "" {
		return fmt.Errorf("%w: %q", ErrEmptyFieldLabel, field.Name)
	}
	if !field.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFieldType, field.Type)
	}
	if field.Type.RequiresOptions() && len(field.Options) == 0 {
		return fmt.Errorf("%w: %q", ErrMissingOptions, field.Name)
	}
	if field.Validation.Pattern != "" {
		if _, err := compilePattern(field.Validation.Pattern); err != nil {
			return fmt.Errorf("%w (field %q)", err, field.Name)
		}
	}
	return nil
}
