// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

const formFileName = "form.json"

// fileDocumentStore keeps one JSON file per document.
//
// Layout:
//
//	<root>/forms/<formId>/form.json
//	<root>/forms/<formId>/submissions/<submissionId>.json
//	<root>/forms/<formId>/versions/<versionId>.json
//	<root>/<collection>/<id>.json
//
// Files are replaced atomically through a temp file and rename, so readers
// never observe a partially written document.
type fileDocumentStore struct {
	root  string
	ids   utils.IDGenerator
	locks *utils.KeyedMutex
	now   func() time.Time
}

// NewFileDocumentStore constructs a [DocumentStore] rooted at root, creating
// the directory when missing.
func NewFileDocumentStore(root string, ids utils.IDGenerator, log *logger.Logger) (DocumentStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		log.Err(err).Str("func", "NewFileDocumentStore").Str("root", root).Msg("error creating data directory")
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	log.Info().Str("func", "NewFileDocumentStore").Str("root", root).Msg("file document store ready")

	return &fileDocumentStore{
		root:  root,
		ids:   ids,
		locks: utils.NewKeyedMutex(),
		now:   time.Now,
	}, nil
}

func (s *fileDocumentStore) Create(ctx context.Context, collection string, payload models.Document) (models.Document, error) {
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

	unlock := s.locks.Lock(lockKey(collection, id))
	defer unlock()

	existing, err := s.locate(collection, id)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return nil, fmt.Errorf("%w: %s/%s", ErrDocumentExists, collection, id)
	}

	doc := newDocument(payload, id, s.now())
	path, err := s.documentPath(collection, id, doc)
	if err != nil {
		return nil, err
	}

	data, err := s.write(path, doc)
	if err != nil {
		log.Err(err).
			Str("func", "fileDocumentStore.Create").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to write document")
		return nil, err
	}

	return decodeDocument(data)
}

func (s *fileDocumentStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if err := validateDocumentID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	}

	path, err := s.locate(collection, id)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, ErrDocumentNotFound
	}

	return s.read(ctx, path)
}

func (s *fileDocumentStore) Update(ctx context.Context, collection, id string, patch models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if err := validateDocumentID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	}

	unlock := s.locks.Lock(lockKey(collection, id))
	defer unlock()

	path, err := s.locate(collection, id)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, ErrDocumentNotFound
	}

	current, err := s.read(ctx, path)
	if err != nil {
		return nil, err
	}

	if want, ok := expectedRevision(patch); ok && want != current.Revision() {
		log.Warn().
			Str("func", "fileDocumentStore.Update").
			Str("collection", collection).
			Str("id", id).
			Int64("stored_revision", current.Revision()).
			Int64("provided_revision", want).
			Msg("optimistic lock failed: revision mismatch")
		return nil, ErrRevisionConflict
	}

	merged := mergeDocument(current, patch, s.now())
	keepParentID(collection, current, merged)

	data, err := s.write(path, merged)
	if err != nil {
		log.Err(err).
			Str("func", "fileDocumentStore.Update").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to write document")
		return nil, err
	}

	return decodeDocument(data)
}

func (s *fileDocumentStore) Delete(ctx context.Context, collection, id string) error {
	log := logger.FromContext(ctx)

	if err := validateCollection(collection); err != nil {
		return err
	}
	if validateDocumentID(id) != nil {
		return nil
	}

	unlock := s.locks.Lock(lockKey(collection, id))
	defer unlock()

	path, err := s.locate(collection, id)
	if err != nil || path == "" {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Err(err).
			Str("func", "fileDocumentStore.Delete").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to remove document file")
		return fmt.Errorf("%w: %w", ErrRemovingFile, err)
	}

	if collection == CollectionForms {
		// only succeeds when no submissions or versions are left behind
		_ = os.Remove(filepath.Dir(path))
	}

	return nil
}

func (s *fileDocumentStore) List(ctx context.Context, collection string, opts models.ListOptions) (models.Page[models.Document], error) {
	log := logger.FromContext(ctx)

	if err := validateCollection(collection); err != nil {
		return models.Page[models.Document]{}, err
	}

	q, err := compileDocumentQuery(opts)
	if err != nil {
		return models.Page[models.Document]{}, err
	}

	paths, err := s.collectionPaths(collection, opts.Filter[parentIDKey])
	if err != nil {
		return models.Page[models.Document]{}, err
	}

	docs := make([]models.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := s.read(ctx, path)
		if errors.Is(err, ErrDocumentNotFound) {
			// removed between glob and read
			continue
		}
		if err != nil {
			log.Err(err).
				Str("func", "fileDocumentStore.List").
				Str("collection", collection).
				Str("path", path).
				Msg("failed to read document")
			return models.Page[models.Document]{}, err
		}
		if q.matches(doc) {
			docs = append(docs, doc)
		}
	}

	q.sort(docs)

	return q.page(docs), nil
}

// documentPath is where a new document of collection is written.
func (s *fileDocumentStore) documentPath(collection, id string, doc models.Document) (string, error) {
	if collection == CollectionForms {
		return filepath.Join(s.root, CollectionForms, id, formFileName), nil
	}

	if dir, nested := nestedCollections[collection]; nested {
		if err := checkParentID(collection, doc); err != nil {
			return "", err
		}
		parentID, _ := doc[parentIDKey].(string)
		return filepath.Join(s.root, CollectionForms, parentID, dir, id+".json"), nil
	}

	return filepath.Join(s.root, collection, id+".json"), nil
}

// locate finds the file of an existing document, or "" when there is none.
func (s *fileDocumentStore) locate(collection, id string) (string, error) {
	var path string

	switch dir, nested := nestedCollections[collection]; {
	case collection == CollectionForms:
		path = filepath.Join(s.root, CollectionForms, id, formFileName)
	case nested:
		matches, err := filepath.Glob(filepath.Join(s.root, CollectionForms, "*", dir, id+".json"))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadingFile, err)
		}
		if len(matches) == 0 {
			return "", nil
		}
		return matches[0], nil
	default:
		path = filepath.Join(s.root, collection, id+".json")
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrReadingFile, err)
	}
	return path, nil
}

// collectionPaths lists the files of a collection. For nested collections a
// valid parentID narrows the scan to one form directory.
func (s *fileDocumentStore) collectionPaths(collection, parentID string) ([]string, error) {
	var pattern string

	switch dir, nested := nestedCollections[collection]; {
	case collection == CollectionForms:
		pattern = filepath.Join(s.root, CollectionForms, "*", formFileName)
	case nested && parentID != "":
		if validateDocumentID(parentID) != nil {
			return nil, nil
		}
		pattern = filepath.Join(s.root, CollectionForms, parentID, dir, "*.json")
	case nested:
		pattern = filepath.Join(s.root, CollectionForms, "*", dir, "*.json")
	default:
		pattern = filepath.Join(s.root, collection, "*.json")
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingFile, err)
	}
	return paths, nil
}

func (s *fileDocumentStore) read(ctx context.Context, path string) (models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrReadingFile, err)
	}

	return decodeDocument(data)
}

// write atomically replaces path with the JSON encoding of doc and returns
// the written bytes.
func (s *fileDocumentStore) write(path string, doc models.Document) ([]byte, error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	return data, nil
}
