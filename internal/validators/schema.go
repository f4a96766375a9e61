// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// Answers pairs a form with the answers submitted against it. It is the
// value [SchemaValidator.Validate] accepts.
type Answers struct {
	Form   models.Form
	Values map[string]any
}

// SchemaValidator checks answers against the fields of a form.
//
// Fields are visited in declaration order, so the first error is stable and
// can be shown as the headline message. Every field is evaluated even after
// an earlier one failed.
type SchemaValidator struct {
}

// NewSchemaValidator constructs a [SchemaValidator].
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// Validate implements [Validator] for [Answers]. When fields are given only
// the top-level form fields with those names are checked. A failed check is
// reported as *[ValidationError].
func (v *SchemaValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var answers Answers
	switch value := obj.(type) {
	case Answers:
		answers = value
	case *Answers:
		answers = *value
	default:
		return ErrUnsupportedType
	}

	result := v.check(answers.Form.Fields, answers.Values, fields)
	if result.IsValid {
		return nil
	}

	logger.FromContext(ctx).Debug().
		Str("func", "SchemaValidator.Validate").
		Str("form_id", answers.Form.ID).
		Int("errors", len(result.Errors)).
		Msg("answers failed validation")

	return &ValidationError{Errors: result.Errors}
}

// Result validates every field of form and returns the full verdict.
func (v *SchemaValidator) Result(form models.Form, answers map[string]any) models.ValidationResult {
	return v.check(form.Fields, answers, nil)
}

func (v *SchemaValidator) check(formFields []models.Field, answers map[string]any, only []string) models.ValidationResult {
	errs := make([]models.FieldError, 0)

	for _, field := range formFields {
		if len(only) > 0 && !slices.Contains(only, field.Name) {
			continue
		}
		errs = v.checkField(field, answers, errs)
	}

	return models.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// checkField validates field and then its active conditional fields.
func (v *SchemaValidator) checkField(field models.Field, answers map[string]any, errs []models.FieldError) []models.FieldError {
	for _, message := range validateValue(field, answers[field.Name]) {
		errs = append(errs, models.FieldError{Field: field.Name, Message: message})
	}

	for _, child := range field.ConditionalFields {
		if conditionHolds(field, child.Condition, answers) {
			errs = v.checkField(child, answers, errs)
		}
	}

	return errs
}

// validateValue applies the required check and the rule of the field type.
func validateValue(field models.Field, value any) []string {
	if isEmpty(value) {
		if field.Required {
			return []string{field.Label + " is required"}
		}
		return nil
	}

	rule, ok := fieldRules[field.Type]
	if !ok {
		return nil
	}
	return rule(field, value)
}

// conditionHolds reports whether a conditional field is active. The
// condition refers to the parent field unless it names another one.
func conditionHolds(parent models.Field, condition *models.FieldCondition, answers map[string]any) bool {
	if condition == nil {
		return false
	}

	name := condition.Field
	if name == "" {
		name = parent.Name
	}

	answer, ok := answers[name]
	if !ok || isEmpty(answer) {
		return false
	}

	if items, isSlice := toSlice(answer); isSlice {
		for _, item := range items {
			if valuesEqual(item, condition.Equals) {
				return true
			}
		}
		return false
	}

	return valuesEqual(answer, condition.Equals)
}

func valuesEqual(a, b any) bool {
	if fa, ok := toStrictNumber(a); ok {
		if fb, ok := toStrictNumber(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toStrictNumber(v any) (float64, bool) {
	switch v.(type) {
	case float64, float32, int, int64:
		return toNumber(v)
	}
	return 0, false
}
