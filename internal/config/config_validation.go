// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the package sentinel
// errors otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case StorageBackendSQL:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
		if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
			return ErrInvalidStorageConfigs
		}
	case StorageBackendFile:
		if cfg.Storage.Files.DataDir == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.Uploads.Backend {
	case UploadsBackendLocal:
		if cfg.Storage.Uploads.Dir == "" {
			return ErrInvalidUploadConfigs
		}
	case UploadsBackendMinio:
		if cfg.Storage.Uploads.Minio.Endpoint == "" || cfg.Storage.Uploads.Minio.Bucket == "" {
			return ErrInvalidUploadConfigs
		}
	default:
		return ErrInvalidUploadConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.MaxUploadSize <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.CleanupQueueSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
