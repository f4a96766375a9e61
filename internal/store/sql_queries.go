// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/models"
)

const documentsTable = "documents"

// sqlDialect isolates the JSON path syntax and placeholders of one driver.
// Paths handed to textExpr and sortExpr are validated by splitFieldPath and
// therefore safe to inline.
type sqlDialect struct {
	placeholder sq.PlaceholderFormat
	lockSuffix  string
	textExpr    func(path []string) string
	sortExpr    func(path []string, desc bool) string
}

var postgresDialect = sqlDialect{
	placeholder: sq.Dollar,
	lockSuffix:  "FOR UPDATE",
	textExpr: func(path []string) string {
		return fmt.Sprintf("data #>> '{%s}'", strings.Join(path, ","))
	},
	sortExpr: func(path []string, desc bool) string {
		if desc {
			return fmt.Sprintf("data #> '{%s}' DESC NULLS LAST", strings.Join(path, ","))
		}
		return fmt.Sprintf("data #> '{%s}' ASC NULLS FIRST", strings.Join(path, ","))
	},
}

// sqliteKindRank mirrors jsonb ordering: missing and null < string < number
// < boolean < array < object. Arrays and objects then tie on value.
const sqliteKindRank = "CASE json_type(data, '%[1]s') WHEN 'text' THEN 1 WHEN 'integer' THEN 2 WHEN 'real' THEN 2 " +
	"WHEN 'true' THEN 3 WHEN 'false' THEN 3 WHEN 'array' THEN 4 WHEN 'object' THEN 5 ELSE 0 END %[2]s, " +
	"CASE WHEN json_type(data, '%[1]s') IN ('array', 'object') THEN NULL ELSE json_extract(data, '%[1]s') END %[2]s"

// SQLite sorts NULL first ascending and last descending by default.
var sqliteDialect = sqlDialect{
	placeholder: sq.Question,
	textExpr: func(path []string) string {
		p := "$." + strings.Join(path, ".")
		return fmt.Sprintf(
			"CASE json_type(data, '%[1]s') WHEN 'true' THEN 'true' WHEN 'false' THEN 'false' ELSE CAST(json_extract(data, '%[1]s') AS TEXT) END",
			p,
		)
	},
	sortExpr: func(path []string, desc bool) string {
		direction := "ASC"
		if desc {
			direction = "DESC"
		}
		return fmt.Sprintf(sqliteKindRank, "$."+strings.Join(path, "."), direction)
	},
}

func dialectFor(driver string) sqlDialect {
	if driver == config.DriverSQLite {
		return sqliteDialect
	}
	return postgresDialect
}

func (d sqlDialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

func buildInsertDocumentQuery(d sqlDialect, collection string, doc models.Document, data []byte) (string, []any, error) {
	return d.builder().
		Insert(documentsTable).
		Columns("collection", "id", "data", "revision", "created_at", "updated_at").
		Values(
			collection,
			doc.ID(),
			string(data),
			doc.Revision(),
			doc[models.DocumentKeyCreatedAt],
			doc[models.DocumentKeyUpdatedAt],
		).
		ToSql()
}

func buildSelectDocumentQuery(d sqlDialect, collection, id string, forUpdate bool) (string, []any, error) {
	query := d.builder().
		Select("data", "revision").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id})

	if forUpdate && d.lockSuffix != "" {
		query = query.Suffix(d.lockSuffix)
	}

	return query.ToSql()
}

func buildUpdateDocumentQuery(d sqlDialect, collection string, doc models.Document, data []byte, storedRevision int64) (string, []any, error) {
	return d.builder().
		Update(documentsTable).
		Set("data", string(data)).
		Set("revision", doc.Revision()).
		Set("updated_at", doc[models.DocumentKeyUpdatedAt]).
		Where(sq.Eq{"collection": collection, "id": doc.ID(), "revision": storedRevision}).
		ToSql()
}

func buildDeleteDocumentQuery(d sqlDialect, collection, id string) (string, []any, error) {
	return d.builder().
		Delete(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

// listConditions turns a collection and its equality filters into WHERE parts.
func listConditions(d sqlDialect, collection string, filter map[string]string) (sq.And, error) {
	conditions := sq.And{sq.Eq{"collection": collection}}

	for _, key := range sortedFilterKeys(filter) {
		path, err := splitFieldPath(key)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, sq.Expr(d.textExpr(path)+" = ?", filter[key]))
	}

	return conditions, nil
}

func buildCountDocumentsQuery(d sqlDialect, collection string, opts models.ListOptions) (string, []any, error) {
	conditions, err := listConditions(d, collection, opts.Filter)
	if err != nil {
		return "", nil, err
	}

	return d.builder().
		Select("COUNT(*)").
		From(documentsTable).
		Where(conditions).
		ToSql()
}

// buildListDocumentsQuery selects one page. Ties on the sort field fall back
// to insertion order (seq).
func buildListDocumentsQuery(d sqlDialect, collection string, opts models.ListOptions) (string, []any, error) {
	opts = opts.Normalize()

	conditions, err := listConditions(d, collection, opts.Filter)
	if err != nil {
		return "", nil, err
	}

	query := d.builder().
		Select("data").
		From(documentsTable).
		Where(conditions)

	if opts.SortBy != "" {
		path, err := splitFieldPath(opts.SortBy)
		if err != nil {
			return "", nil, err
		}
		query = query.OrderBy(d.sortExpr(path, opts.Order == models.OrderDesc))
	}

	return query.
		OrderBy("seq ASC").
		Limit(uint64(opts.Limit)).
		Offset(uint64(opts.Offset())).
		ToSql()
}
