// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

// sqlDocumentStore keeps every collection in the single "documents" table.
// The whole document is stored in the data column; id, revision and the
// timestamps are mirrored into columns for constraints and locking.
type sqlDocumentStore struct {
	*DB
	dialect sqlDialect
	ids     utils.IDGenerator
	locks   *utils.KeyedMutex
	now     func() time.Time
}

// NewSQLDocumentStore constructs a [DocumentStore] on top of an open [DB].
// The schema is expected to be migrated.
func NewSQLDocumentStore(db *DB, ids utils.IDGenerator) DocumentStore {
	return &sqlDocumentStore{
		DB:      db,
		dialect: dialectFor(db.driver),
		ids:     ids,
		locks:   utils.NewKeyedMutex(),
		now:     time.Now,
	}
}

func (s *sqlDocumentStore) Create(ctx context.Context, collection string, payload models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	id := payload.ID()
	if id == "" {
		id = s.ids.Generate()
	} else if err := validateDocumentID(id); err != nil {
		return nil, err
	}

	doc := newDocument(payload, id, s.now())
	if err := checkParentID(collection, doc); err != nil {
		return nil, err
	}

	data, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	query, args, err := buildInsertDocumentQuery(s.dialect, collection, doc, data)
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Create").Msg("failed to build insert query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrDocumentExists, collection, id)
		}
		log.Err(err).
			Str("func", "sqlDocumentStore.Create").
			Str("collection", collection).
			Str("id", id).
			Stringer("classification", s.classify(err)).
			Msg("failed to insert document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return decodeDocument(data)
}

func (s *sqlDocumentStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if err := validateDocumentID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	}

	doc, _, err := s.selectDocument(ctx, s.DB.DB, collection, id, false)
	return doc, err
}

func (s *sqlDocumentStore) Update(ctx context.Context, collection, id string, patch models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if err := validateDocumentID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	}

	unlock := s.locks.Lock(lockKey(collection, id))
	defer unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "sqlDocumentStore.Update").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	current, storedRevision, err := s.selectDocument(ctx, tx, collection, id, true)
	if err != nil {
		return nil, err
	}

	if want, ok := expectedRevision(patch); ok && want != storedRevision {
		log.Warn().
			Str("func", "sqlDocumentStore.Update").
			Str("collection", collection).
			Str("id", id).
			Int64("stored_revision", storedRevision).
			Int64("provided_revision", want).
			Msg("optimistic lock failed: revision mismatch")
		return nil, ErrRevisionConflict
	}

	merged := mergeDocument(current, patch, s.now())
	keepParentID(collection, current, merged)

	data, err := encodeDocument(merged)
	if err != nil {
		return nil, err
	}

	query, args, err := buildUpdateDocumentQuery(s.dialect, collection, merged, data, storedRevision)
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Update").Msg("failed to build update query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlDocumentStore.Update").
			Str("collection", collection).
			Str("id", id).
			Stringer("classification", s.classify(err)).
			Msg("failed to update document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		// a writer outside this process got there first
		return nil, ErrRevisionConflict
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "sqlDocumentStore.Update").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return decodeDocument(data)
}

func (s *sqlDocumentStore) Delete(ctx context.Context, collection, id string) error {
	log := logger.FromContext(ctx)

	if err := validateCollection(collection); err != nil {
		return err
	}
	if validateDocumentID(id) != nil {
		return nil
	}

	query, args, err := buildDeleteDocumentQuery(s.dialect, collection, id)
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Delete").Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqlDocumentStore.Delete").
			Str("collection", collection).
			Str("id", id).
			Stringer("classification", s.classify(err)).
			Msg("failed to delete document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlDocumentStore) List(ctx context.Context, collection string, opts models.ListOptions) (models.Page[models.Document], error) {
	log := logger.FromContext(ctx)
	opts = opts.Normalize()

	if err := validateCollection(collection); err != nil {
		return models.Page[models.Document]{}, err
	}

	countQuery, countArgs, err := buildCountDocumentsQuery(s.dialect, collection, opts)
	if err != nil {
		return models.Page[models.Document]{}, wrapBuildError(err)
	}
	listQuery, listArgs, err := buildListDocumentsQuery(s.dialect, collection, opts)
	if err != nil {
		return models.Page[models.Document]{}, wrapBuildError(err)
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "sqlDocumentStore.List").
			Str("collection", collection).
			Msg("failed to count documents")
		return models.Page[models.Document]{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pagination := models.NewPagination(total, opts.Page, opts.Limit)
	if opts.PastEnd(total) {
		return models.Page[models.Document]{Data: []models.Document{}, Pagination: pagination}, nil
	}

	rows, err := s.DB.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlDocumentStore.List").
			Str("collection", collection).
			Stringer("classification", s.classify(err)).
			Msg("failed to execute list query")
		return models.Page[models.Document]{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0, min(opts.Limit, total))
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			log.Err(err).
				Str("func", "sqlDocumentStore.List").
				Str("collection", collection).
				Msg("failed to scan document row")
			return models.Page[models.Document]{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		doc, err := decodeDocument([]byte(data))
		if err != nil {
			return models.Page[models.Document]{}, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "sqlDocumentStore.List").
			Str("collection", collection).
			Msg("error occurred during rows iteration")
		return models.Page[models.Document]{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.Page[models.Document]{Data: docs, Pagination: pagination}, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// selectDocument loads one document and its stored revision. With
// forUpdate the row is locked until the surrounding transaction ends.
func (s *sqlDocumentStore) selectDocument(ctx context.Context, q queryRower, collection, id string, forUpdate bool) (models.Document, int64, error) {
	query, args, err := buildSelectDocumentQuery(s.dialect, collection, id, forUpdate)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		data     string
		revision int64
	)
	err = q.QueryRowContext(ctx, query, args...).Scan(&data, &revision)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrDocumentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlDocumentStore.selectDocument").
			Str("collection", collection).
			Str("id", id).
			Stringer("classification", s.classify(err)).
			Msg("failed to select document")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	doc, err := decodeDocument([]byte(data))
	if err != nil {
		return nil, 0, err
	}
	return doc, revision, nil
}

// wrapBuildError keeps field path errors visible to callers.
func wrapBuildError(err error) error {
	if errors.Is(err, ErrInvalidFieldPath) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
}
