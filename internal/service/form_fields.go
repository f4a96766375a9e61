package service

import (
	"sort"
	"strings"

	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

// materializeFields prepares fields for storage. Every field gets an id and
// its defaults, and orders become dense 0..n-1 on each level while the
// declaration order stays as given. A field without an id takes the id of
// the same-named field in previous, if there is one.
func materializeFields(fields, previous []models.Field, ids utils.IDGenerator) []models.Field {
	known := make(map[string]string)
	collectFieldIDs(previous, known)

	materialized := materializeLevel(fields, known, ids)
	if materialized == nil {
		return []models.Field{}
	}
	return materialized
}

func collectFieldIDs(fields []models.Field, known map[string]string) {
	for _, field := range fields {
		if field.ID != "" {
			known[strings.ToLower(field.Name)] = field.ID
		}
		collectFieldIDs(field.ConditionalFields, known)
	}
}

func materializeLevel(fields []models.Field, known map[string]string, ids utils.IDGenerator) []models.Field {
	if len(fields) == 0 {
		return nil
	}

	out := make([]models.Field, len(fields))
	for i, field := range fields {
		if field.ID == "" {
			if id, ok := known[strings.ToLower(field.Name)]; ok {
				field.ID = id
			} else {
				field.ID = ids.Generate()
			}
		}
		if field.Options == nil {
			field.Options = []string{}
		}
		if field.Order == nil {
			field.Order = models.IntPtr(i)
		}
		field.ConditionalFields = materializeLevel(field.ConditionalFields, known, ids)
		out[i] = field
	}

	renumberFields(out)
	return out
}

// renumberFields replaces every order with its rank, leaving the slice order
// untouched. Equal orders rank in slice order.
func renumberFields(fields []models.Field) {
	ranked := make([]int, len(fields))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return fields[ranked[a]].Position() < fields[ranked[b]].Position()
	})

	for rank, i := range ranked {
		fields[i].Order = models.IntPtr(rank)
	}
}

// reorderFields applies orders (field id to order) and returns the fields
// sorted and densely renumbered. Unknown ids are ignored.
func reorderFields(fields []models.Field, orders map[string]int) []models.Field {
	out := make([]models.Field, len(fields))
	copy(out, fields)

	for i := range out {
		if order, ok := orders[out[i].ID]; ok {
			out[i].Order = models.IntPtr(order)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Position() < out[b].Position()
	})
	for i := range out {
		out[i].Order = models.IntPtr(i)
	}
	return out
}

// withoutFileAnswers returns a copy of answers without values for file
// fields at any nesting level. Only saved uploads may fill those fields.
func withoutFileAnswers(fields []models.Field, answers map[string]any) map[string]any {
	out := make(map[string]any, len(answers))
	for name, value := range answers {
		out[name] = value
	}
	dropFileAnswers(fields, out)
	return out
}

func dropFileAnswers(fields []models.Field, answers map[string]any) {
	for _, field := range fields {
		if field.Type == models.FieldTypeFile {
			delete(answers, field.Name)
		}
		dropFileAnswers(field.ConditionalFields, answers)
	}
}

// uploadedPaths returns the storage paths of every file object in answers.
func uploadedPaths(answers map[string]any) []string {
	var paths []string
	for _, value := range answers {
		paths = appendFilePaths(paths, value)
	}
	sort.Strings(paths)
	return paths
}

func appendFilePaths(paths []string, value any) []string {
	switch v := value.(type) {
	case models.UploadedFile:
		if v.Path != "" {
			paths = append(paths, v.Path)
		}
	case []models.UploadedFile:
		for _, file := range v {
			paths = appendFilePaths(paths, file)
		}
	case map[string]any:
		path, _ := v["path"].(string)
		if _, named := v["originalName"]; named && path != "" {
			paths = append(paths, path)
		}
	case []any:
		for _, item := range v {
			paths = appendFilePaths(paths, item)
		}
	}
	return paths
}
