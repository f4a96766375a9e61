// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "sort"

// FieldType enumerates the input kinds a form field can render as.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeSelect   FieldType = "select"
	FieldTypeFile     FieldType = "file"
)

// IsValid reports whether t is one of the supported field types.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeEmail, FieldTypeDate,
		FieldTypeCheckbox, FieldTypeRadio, FieldTypeSelect, FieldTypeFile:
		return true
	}
	return false
}

// RequiresOptions reports whether fields of type t must declare at least one option.
func (t FieldType) RequiresOptions() bool {
	return t == FieldTypeCheckbox || t == FieldTypeRadio || t == FieldTypeSelect
}

// FieldValidation is the optional constraint bag attached to a field.
// Which keys apply depends on the field type; unused keys are ignored.
type FieldValidation struct {
	// Min and Max bound numeric values (inclusive).
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// MinLength and MaxLength bound the trimmed text length in characters.
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// Pattern is an unanchored regular expression for text values.
	Pattern string `json:"pattern,omitempty"`

	// CustomMessage replaces the default message of a pattern mismatch.
	CustomMessage string `json:"customMessage,omitempty"`

	// MinDate is the earliest accepted date for date fields.
	MinDate string `json:"minDate,omitempty"`
}

// FieldCondition activates a conditional field when the answer of Field equals Equals.
// An empty Field refers to the parent field.
type FieldCondition struct {
	Field  string `json:"field,omitempty"`
	Equals any    `json:"equals"`
}

// Field is a single typed input in a form schema.
type Field struct {
	// ID is assigned once on creation and never changes afterwards.
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Name     string    `json:"name"`
	Required bool      `json:"required"`

	// Options lists the allowed values of checkbox, radio and select fields.
	Options    []string        `json:"options"`
	Validation FieldValidation `json:"validation"`

	// Order is the display position. Nil means "use the declaration position".
	Order *int `json:"order,omitempty"`

	// Condition is set on nested conditional fields only.
	Condition         *FieldCondition `json:"condition,omitempty"`
	ConditionalFields []Field         `json:"conditionalFields,omitempty"`
}

// Position returns the display order of the field, or 0 when unset.
func (f Field) Position() int {
	if f.Order == nil {
		return 0
	}
	return *f.Order
}

// SortFieldsByOrder returns a copy of fields sorted by display order.
// Fields with equal order keep their declaration order.
func SortFieldsByOrder(fields []Field) []Field {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position() < sorted[j].Position()
	})
	return sorted
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
