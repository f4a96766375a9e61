// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request decoding errors. All of them are reported as 400 Bad Request.
var (
	// ErrInvalidJSON is returned when the request body is not valid JSON
	// for the expected payload.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidQuery is returned when a pagination parameter is not a
	// positive integer or the sort order is neither asc nor desc.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrInvalidMultipart is returned when a multipart submission cannot be
	// parsed or its "answers" part is not a JSON object.
	ErrInvalidMultipart = errors.New("invalid multipart submission")
)
