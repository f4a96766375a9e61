// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks forms and answers before they are persisted.
//
// Two validators are provided:
//   - FormValidator: structural rules of a form schema (field names, types,
//     options, patterns, conditional depth) and the shape of update requests.
//   - SchemaValidator: the per-field answer rules applied to submissions,
//     producing field-indexed messages.
//
// Both implement Validator, so services can narrow a check to named fields:
//
//	err := v.Validate(ctx, update, validators.FieldStatus)
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
