package models

// FieldError is a single failed rule for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the verdict of validating answers against a form schema.
type ValidationResult struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors"`
}

// ExportRow is one flattened submission keyed by column header.
type ExportRow map[string]string

// Export is the tabular projection of a form's submissions.
// Columns holds the headers in output order.
type Export struct {
	Columns []string    `json:"columns"`
	Rows    []ExportRow `json:"rows"`
}
