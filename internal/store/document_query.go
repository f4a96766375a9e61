package store

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/MKhiriev/go-form-keeper/models"
)

type documentFilter struct {
	path  []string
	value string
}

// documentQuery is a validated ListOptions evaluated in memory.
type documentQuery struct {
	opts     models.ListOptions
	filters  []documentFilter
	sortPath []string
}

func compileDocumentQuery(opts models.ListOptions) (documentQuery, error) {
	q := documentQuery{opts: opts.Normalize()}

	for _, key := range sortedFilterKeys(opts.Filter) {
		path, err := splitFieldPath(key)
		if err != nil {
			return documentQuery{}, err
		}
		q.filters = append(q.filters, documentFilter{path: path, value: opts.Filter[key]})
	}

	if opts.SortBy != "" {
		path, err := splitFieldPath(opts.SortBy)
		if err != nil {
			return documentQuery{}, err
		}
		q.sortPath = path
	}

	return q, nil
}

func sortedFilterKeys(filter map[string]string) []string {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (q documentQuery) matches(doc models.Document) bool {
	for _, f := range q.filters {
		v, ok := doc.Lookup(f.path)
		if !ok {
			return false
		}
		s, ok := filterText(v)
		if !ok || s != f.value {
			return false
		}
	}
	return true
}

// sort orders docs by the sort field, missing values first when ascending and
// last when descending. Ties keep creation order.
func (q documentQuery) sort(docs []models.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if q.sortPath != nil {
			a, _ := docs[i].Lookup(q.sortPath)
			b, _ := docs[j].Lookup(q.sortPath)
			if c := compareValues(a, b); c != 0 {
				if q.opts.Order == models.OrderDesc {
					return c > 0
				}
				return c < 0
			}
		}
		return creationLess(docs[i], docs[j])
	})
}

// page slices the sorted docs and computes pagination.
func (q documentQuery) page(docs []models.Document) models.Page[models.Document] {
	total := len(docs)
	data := make([]models.Document, 0, min(q.opts.Limit, total))
	if !q.opts.PastEnd(total) {
		start := q.opts.Offset()
		end := min(start+q.opts.Limit, total)
		data = append(data, docs[start:end]...)
	}

	return models.Page[models.Document]{
		Data:       data,
		Pagination: models.NewPagination(total, q.opts.Page, q.opts.Limit),
	}
}

func creationLess(a, b models.Document) bool {
	ca, _ := a[models.DocumentKeyCreatedAt].(string)
	cb, _ := b[models.DocumentKeyCreatedAt].(string)
	if ca != cb {
		return ca < cb
	}
	return a.ID() < b.ID()
}

// filterText renders a scalar the way a JSON text extraction would.
func filterText(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case int:
		return strconv.Itoa(value), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(value), false
	}
}

// typeRank orders JSON kinds: null < string < number < boolean < array < object.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case string:
		return 1
	case float64, int64, int:
		return 2
	case bool:
		return 3
	case []any:
		return 4
	default:
		return 5
	}
}

func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra - rb
	}

	switch av := a.(type) {
	case string:
		bv := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case float64, int64, int:
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
