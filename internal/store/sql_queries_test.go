// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/models"
)

func testDocument() models.Document {
	return models.Document{
		models.DocumentKeyID:        "doc-1",
		models.DocumentKeyCreatedAt: "2026-01-01T00:00:00.000000000Z",
		models.DocumentKeyUpdatedAt: "2026-01-02T00:00:00.000000000Z",
		models.DocumentKeyRevision:  int64(3),
	}
}

func Test_dialectFor(t *testing.T) {
	assert.Equal(t, "FOR UPDATE", dialectFor(config.DriverPostgres).lockSuffix)
	assert.Empty(t, dialectFor(config.DriverSQLite).lockSuffix)
	assert.Equal(t, "FOR UPDATE", dialectFor("unknown").lockSuffix)
}

func Test_buildInsertDocumentQuery(t *testing.T) {
	doc := testDocument()

	query, args, err := buildInsertDocumentQuery(postgresDialect, "forms", doc, []byte(`{"a":1}`))
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO documents (collection,id,data,revision,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6)",
		query,
	)
	assert.Equal(t, []any{
		"forms", "doc-1", `{"a":1}`, int64(3),
		"2026-01-01T00:00:00.000000000Z", "2026-01-02T00:00:00.000000000Z",
	}, args)
}

func Test_buildSelectDocumentQuery(t *testing.T) {
	t.Run("postgres for update", func(t *testing.T) {
		query, args, err := buildSelectDocumentQuery(postgresDialect, "forms", "doc-1", true)
		require.NoError(t, err)

		assert.Equal(t, "SELECT data, revision FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE", query)
		assert.Equal(t, []any{"forms", "doc-1"}, args)
	})

	t.Run("postgres plain", func(t *testing.T) {
		query, _, err := buildSelectDocumentQuery(postgresDialect, "forms", "doc-1", false)
		require.NoError(t, err)
		assert.NotContains(t, query, "FOR UPDATE")
	})

	t.Run("sqlite never locks rows", func(t *testing.T) {
		query, _, err := buildSelectDocumentQuery(sqliteDialect, "forms", "doc-1", true)
		require.NoError(t, err)

		assert.Equal(t, "SELECT data, revision FROM documents WHERE collection = ? AND id = ?", query)
	})
}

func Test_buildUpdateDocumentQuery(t *testing.T) {
	doc := testDocument()

	query, args, err := buildUpdateDocumentQuery(postgresDialect, "forms", doc, []byte(`{}`), 2)
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE documents SET data = $1, revision = $2, updated_at = $3 WHERE collection = $4 AND id = $5 AND revision = $6",
		query,
	)
	assert.Equal(t, []any{`{}`, int64(3), "2026-01-02T00:00:00.000000000Z", "forms", "doc-1", int64(2)}, args)
}

func Test_buildDeleteDocumentQuery(t *testing.T) {
	query, args, err := buildDeleteDocumentQuery(sqliteDialect, "submissions", "s-1")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM documents WHERE collection = ? AND id = ?", query)
	assert.Equal(t, []any{"submissions", "s-1"}, args)
}

func Test_buildCountDocumentsQuery(t *testing.T) {
	opts := models.ListOptions{Filter: map[string]string{
		"status": "active",
		"formId": "f-1",
	}}

	query, args, err := buildCountDocumentsQuery(postgresDialect, "submissions", opts)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*) FROM documents WHERE (collection = $1 AND data #>> '{formId}' = $2 AND data #>> '{status}' = $3)",
		query,
	)
	// filters are applied in key order
	assert.Equal(t, []any{"submissions", "f-1", "active"}, args)
}

func Test_buildListDocumentsQuery(t *testing.T) {
	t.Run("postgres sorted descending", func(t *testing.T) {
		opts := models.ListOptions{
			Filter: map[string]string{"metadata.ipAddress": "10.0.0.1"},
			Page:   3,
			Limit:  5,
			SortBy: "createdAt",
			Order:  models.OrderDesc,
		}

		query, args, err := buildListDocumentsQuery(postgresDialect, "submissions", opts)
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT data FROM documents WHERE (collection = $1 AND data #>> '{metadata,ipAddress}' = $2) "+
				"ORDER BY data #> '{createdAt}' DESC NULLS LAST, seq ASC LIMIT 5 OFFSET 10",
			query,
		)
		assert.Equal(t, []any{"submissions", "10.0.0.1"}, args)
	})

	t.Run("sqlite defaults", func(t *testing.T) {
		query, args, err := buildListDocumentsQuery(sqliteDialect, "forms", models.ListOptions{})
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT data FROM documents WHERE (collection = ?) ORDER BY seq ASC LIMIT 10 OFFSET 0",
			query,
		)
		assert.Equal(t, []any{"forms"}, args)
	})

	t.Run("sqlite filter renders booleans as text", func(t *testing.T) {
		opts := models.ListOptions{Filter: map[string]string{"settings.allowMultipleSubmissions": "true"}, SortBy: "title"}

		query, _, err := buildListDocumentsQuery(sqliteDialect, "forms", opts)
		require.NoError(t, err)

		assert.Contains(t, query, "json_type(data, '$.settings.allowMultipleSubmissions')")
		assert.Contains(t, query, "ORDER BY CASE json_type(data, '$.title') WHEN 'text' THEN 1")
		assert.Contains(t, query, "ELSE json_extract(data, '$.title') END ASC, seq ASC")
	})

	t.Run("invalid sort path", func(t *testing.T) {
		_, _, err := buildListDocumentsQuery(postgresDialect, "forms", models.ListOptions{SortBy: "title'; DROP TABLE documents; --"})
		require.ErrorIs(t, err, ErrInvalidFieldPath)
	})

	t.Run("invalid filter path", func(t *testing.T) {
		_, _, err := buildCountDocumentsQuery(postgresDialect, "forms", models.ListOptions{Filter: map[string]string{"a..b": "x"}})
		require.ErrorIs(t, err, ErrInvalidFieldPath)
	})
}

func Test_postgresDialect_PathsAreInlinedVerbatim(t *testing.T) {
	expr := postgresDialect.textExpr([]string{"metadata", "ipAddress"})
	assert.True(t, strings.HasPrefix(expr, "data #>> "))
	assert.Contains(t, expr, "{metadata,ipAddress}")
}
