package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MKhiriev/go-form-keeper/models"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dateLayouts are tried in order when parsing date answers and minDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// fieldRule checks a non-empty value against one field type and returns
// the failure messages in order.
type fieldRule func(field models.Field, value any) []string

var fieldRules = map[models.FieldType]fieldRule{
	models.FieldTypeEmail:    emailRule,
	models.FieldTypeNumber:   numberRule,
	models.FieldTypeText:     textRule,
	models.FieldTypeTextarea: textRule,
	models.FieldTypeDate:     dateRule,
	models.FieldTypeCheckbox: checkboxRule,
	models.FieldTypeRadio:    choiceRule,
	models.FieldTypeSelect:   choiceRule,
	models.FieldTypeFile:     fileRule,
}

// isEmpty reports whether value counts as "not answered".
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []models.UploadedFile:
		return len(v) == 0
	case []map[string]any:
		return len(v) == 0
	}
	return false
}

func emailRule(field models.Field, value any) []string {
	s, ok := value.(string)
	if !ok || !emailRegexp.MatchString(s) {
		return []string{field.Label + " must be a valid email address"}
	}
	return nil
}

func numberRule(field models.Field, value any) []string {
	n, ok := toNumber(value)
	if !ok {
		return []string{field.Label + " must be a valid number"}
	}

	var messages []string
	if minValue := field.Validation.Min; minValue != nil && n < *minValue {
		messages = append(messages, fmt.Sprintf("%s must be at least %s", field.Label, formatNumber(*minValue)))
	}
	if maxValue := field.Validation.Max; maxValue != nil && n > *maxValue {
		messages = append(messages, fmt.Sprintf("%s must be at most %s", field.Label, formatNumber(*maxValue)))
	}
	return messages
}

func textRule(field models.Field, value any) []string {
	s, ok := value.(string)
	if !ok {
		return []string{field.Label + " must be text"}
	}

	var messages []string
	trimmed := strings.TrimSpace(s)
	length := utf8.RuneCountInString(trimmed)
	if minLength := field.Validation.MinLength; minLength != nil && length < *minLength {
		messages = append(messages, fmt.Sprintf("%s must be at least %d characters", field.Label, *minLength))
	}
	if maxLength := field.Validation.MaxLength; maxLength != nil && length > *maxLength {
		messages = append(messages, fmt.Sprintf("%s must be at most %d characters", field.Label, *maxLength))
	}
	if pattern := field.Validation.Pattern; pattern != "" {
		// invalid patterns are rejected when the form is written
		if re, err := compilePattern(pattern); err == nil && !re.MatchString(trimmed) {
			message := field.Validation.CustomMessage
			if message == "" {
				message = field.Label + " format is invalid"
			}
			messages = append(messages, message)
		}
	}
	return messages
}

func dateRule(field models.Field, value any) []string {
	date, ok := parseDate(value)
	if !ok {
		return []string{field.Label + " must be a valid date"}
	}

	if field.Validation.MinDate != "" {
		if minDate, ok := parseDate(field.Validation.MinDate); ok && date.Before(minDate) {
			return []string{fmt.Sprintf("%s must be on or after %s", field.Label, field.Validation.MinDate)}
		}
	}
	return nil
}

func checkboxRule(field models.Field, value any) []string {
	items, ok := toSlice(value)
	if !ok {
		return []string{field.Label + " must be an array"}
	}

	if len(field.Options) > 0 {
		for _, item := range items {
			s, isString := item.(string)
			if !isString || !containsOption(field.Options, s) {
				return []string{field.Label + " contains invalid options"}
			}
		}
	}
	return nil
}

func choiceRule(field models.Field, value any) []string {
	if len(field.Options) == 0 {
		return nil
	}

	s, ok := value.(string)
	if !ok || !containsOption(field.Options, s) {
		return []string{field.Label + " must be one of the provided options"}
	}
	return nil
}

func fileRule(field models.Field, value any) []string {
	message := []string{field.Label + " must be a valid file upload"}

	if items, ok := toSlice(value); ok {
		if len(items) == 0 {
			return message
		}
		for _, item := range items {
			if !isFileObject(item) {
				return message
			}
		}
		return nil
	}

	if !isFileObject(value) {
		return message
	}
	return nil
}

func isFileObject(value any) bool {
	switch v := value.(type) {
	case models.UploadedFile:
		return v.Path != "" && v.OriginalName != ""
	case *models.UploadedFile:
		return v != nil && v.Path != "" && v.OriginalName != ""
	case map[string]any:
		path, _ := v["path"].(string)
		originalName, _ := v["originalName"].(string)
		return path != "" && originalName != ""
	}
	return false
}

// toNumber coerces numbers, numeric strings and booleans.
func toNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// parseDate accepts ISO 8601 strings and unix milliseconds.
func parseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return time.UnixMilli(int64(v)).UTC(), true
		}
	case int64:
		return time.UnixMilli(v).UTC(), true
	case int:
		return time.UnixMilli(int64(v)).UTC(), true
	case time.Time:
		return v, true
	}
	return time.Time{}, false
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	case []models.UploadedFile:
		items := make([]any, len(v))
		for i, f := range v {
			items[i] = f
		}
		return items, true
	case []map[string]any:
		items := make([]any, len(v))
		for i, m := range v {
			items[i] = m
		}
		return items, true
	}
	return nil, false
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

const patternCacheSize = 512

// patternCache keeps the most recently used compiled patterns. lru.New only
// fails for a non-positive size.
var patternCache, _ = lru.New[string, *regexp.Regexp](patternCacheSize)

// compilePattern compiles and caches a validation pattern.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Get(pattern); ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	patternCache.Add(pattern, re)
	return re, nil
}
