package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid document store settings
	// (for example, an unknown backend, an empty DSN or an unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidUploadConfigs indicates invalid upload store settings
	// (for example, a minio backend without endpoint or bucket).
	ErrInvalidUploadConfigs = errors.New("invalid upload configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or
	// non-positive request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive upload size limit).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero cleanup queue size).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
