// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/go-form-keeper/models"
)

// TimestampLayout is the fixed-width UTC layout of createdAt and updatedAt.
// Lexical order of formatted values equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Collections used by the typed storages.
const (
	CollectionForms        = "forms"
	CollectionSubmissions  = "submissions"
	CollectionFormVersions = "form_versions"
)

// parentIDKey names the parent form of a nested document.
const parentIDKey = "formId"

// nestedCollections belong to a parent form. The file store keeps them
// under <root>/forms/<formId>/<dir>.
var nestedCollections = map[string]string{
	CollectionSubmissions:  "submissions",
	CollectionFormVersions: "versions",
}

var (
	fieldPathRegexp  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	collectionRegexp = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	documentIDRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func splitFieldPath(path string) ([]string, error) {
	if !fieldPathRegexp.MatchString(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFieldPath, path)
	}
	return strings.Split(path, "."), nil
}

func validateCollection(collection string) error {
	if !collectionRegexp.MatchString(collection) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return nil
}

func validateDocumentID(id string) error {
	if !documentIDRegexp.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentID, id)
	}
	return nil
}

func isReservedKey(key string) bool {
	switch key {
	case models.DocumentKeyID, models.DocumentKeyCreatedAt, models.DocumentKeyUpdatedAt, models.DocumentKeyRevision:
		return true
	}
	return false
}

// newDocument copies payload and stamps the reserved keys of a first revision.
func newDocument(payload models.Document, id string, now time.Time) models.Document {
	doc := make(models.Document, len(payload)+4)
	for k, v := range payload {
		if isReservedKey(k) {
			continue
		}
		doc[k] = v
	}

	ts := formatTimestamp(now)
	doc[models.DocumentKeyID] = id
	doc[models.DocumentKeyCreatedAt] = ts
	doc[models.DocumentKeyUpdatedAt] = ts
	doc[models.DocumentKeyRevision] = int64(1)

	return doc
}

// mergeDocument shallow-merges patch over current. Reserved keys of patch are
// ignored; updatedAt and revision are advanced.
func mergeDocument(current, patch models.Document, now time.Time) models.Document {
	merged := make(models.Document, len(current)+len(patch))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range patch {
		if isReservedKey(k) {
			continue
		}
		merged[k] = v
	}

	merged[models.DocumentKeyUpdatedAt] = formatTimestamp(now)
	merged[models.DocumentKeyRevision] = current.Revision() + 1

	return merged
}

// expectedRevision returns the revision a patch was computed against, if any.
func expectedRevision(patch models.Document) (int64, bool) {
	if _, ok := patch[models.DocumentKeyRevision]; !ok {
		return 0, false
	}
	return patch.Revision(), true
}

func encodeDocument(doc models.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	return data, nil
}

func decodeDocument(data []byte) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: not an object", ErrDecodingDocument)
	}
	return doc, nil
}

// ToDocument converts a JSON-tagged value into a document.
func ToDocument(v any) (models.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	return decodeDocument(data)
}

// FromDocument decodes doc into the JSON-tagged value pointed to by v.
func FromDocument(doc models.Document, v any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	return nil
}

func lockKey(collection, id string) string {
	return collection + "/" + id
}

// checkParentID requires documents of nested collections to name a valid
// parent form.
func checkParentID(collection string, doc models.Document) error {
	if _, nested := nestedCollections[collection]; !nested {
		return nil
	}
	parentID, _ := doc[parentIDKey].(string)
	if parentID == "" {
		return fmt.Errorf("%w: %s/%s", ErrMissingParentID, collection, doc.ID())
	}
	return validateDocumentID(parentID)
}

// keepParentID pins the parent of a nested document across updates.
func keepParentID(collection string, current, merged models.Document) {
	if _, nested := nestedCollections[collection]; nested {
		merged[parentIDKey] = current[parentIDKey]
	}
}
