package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
)

// Storages groups the document store, the typed facades over it and the
// upload store into a single value passed to the service layer.
type Storages struct {
	Documents          DocumentStore
	FormStorage        FormStorage
	SubmissionStorage  SubmissionStorage
	FormVersionStorage FormVersionStorage
	UploadStorage      UploadStorage

	// db is set for the SQL backend only.
	db *DB
}

// NewStorages initialises the storage layer selected by cfg:
//  1. Opens the document store. For the SQL backend this connects to
//     Postgres or SQLite and runs pending migrations; for the file backend
//     the data directory is created.
//  2. Opens the upload store (local disk or MinIO).
//  3. Wires the typed facades on top of the document store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating new storages...")

	ids := utils.NewUUIDGenerator()
	storages := new(Storages)

	switch cfg.Backend {
	case config.StorageBackendSQL:
		db, err := connectDB(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		storages.db = db
		storages.Documents = NewSQLDocumentStore(db, ids)
	default:
		documents, err := NewFileDocumentStore(cfg.Files.DataDir, ids, log)
		if err != nil {
			return nil, err
		}
		storages.Documents = documents
	}

	uploads, err := newUploadStorage(ctx, cfg.Uploads, ids, log)
	if err != nil {
		storages.Close()
		return nil, err
	}
	storages.UploadStorage = uploads

	storages.FormStorage = NewFormStorage(storages.Documents, log)
	storages.SubmissionStorage = NewSubmissionStorage(storages.Documents, log)
	storages.FormVersionStorage = NewFormVersionStorage(storages.Documents)

	return storages, nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func connectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := NewConnectSQLite(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return db, nil
	}

	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}
	return db, nil
}

func newUploadStorage(ctx context.Context, cfg config.Uploads, ids utils.IDGenerator, log *logger.Logger) (UploadStorage, error) {
	if cfg.Backend == config.UploadsBackendMinio {
		return NewMinioUploadStorage(ctx, cfg, ids, log)
	}
	return NewLocalUploadStorage(cfg.Dir, cfg.BaseURL, ids, log)
}
