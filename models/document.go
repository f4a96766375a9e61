// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "math"

// Document is the schemaless record persisted by the document store.
type Document map[string]any

// Reserved document keys maintained by the store.
const (
	DocumentKeyID        = "id"
	DocumentKeyCreatedAt = "createdAt"
	DocumentKeyUpdatedAt = "updatedAt"
	DocumentKeyRevision  = "revision"
)

// ID returns the document id or an empty string.
func (d Document) ID() string {
	id, _ := d[DocumentKeyID].(string)
	return id
}

// Revision returns the document revision, accepting any numeric encoding.
func (d Document) Revision() int64 {
	switch v := d[DocumentKeyRevision].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Lookup resolves a dotted path such as "metadata.ipAddress".
func (d Document) Lookup(path []string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			if doc, isDoc := cur.(Document); isDoc {
				m = doc
			} else {
				return nil, false
			}
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListOptions narrows, orders and pages a collection listing.
type ListOptions struct {
	// Filter maps a dotted field path to the value it must equal.
	Filter map[string]string
	Page   int
	Limit  int
	SortBy string
	Order  string
}

// Normalize fills defaults for unset pagination and ordering and caps Limit
// at MaxLimit.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Order != OrderDesc {
		o.Order = OrderAsc
	}
	return o
}

// Offset returns the number of entries skipped before the current page,
// saturating at math.MaxInt. Call it on normalized options.
func (o ListOptions) Offset() int {
	if o.Page-1 > math.MaxInt/o.Limit {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// PastEnd reports whether the current page starts after the last of total
// entries. Call it on normalized options.
func (o ListOptions) PastEnd(total int) bool {
	return o.Page-1 > (total-1)/o.Limit
}

// Pagination describes the position of a page in a listing.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// NewPagination computes pages as ceil(total/limit).
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Pages: pages}
}

// Page is one page of a listing.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ListQuery is the listing request accepted by the service layer.
type ListQuery struct {
	Status string
	Page   int
	Limit  int
	SortBy string
	Order  string
}
