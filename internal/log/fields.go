package log

import "ledger/internal/core"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldDBPath    = "db_path"
	FieldID        = "id"
	FieldKind      = "kind"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpInitialize = "initialize"
	OpSave       = "save"
	OpLoad       = "load"
	OpSummarize  = "summarize"
	OpBreakdown  = "breakdown"
	OpStartup    = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeStorage       = "storage_error"
	ErrorTypeSchema        = "schema_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds error type field
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds the fields of a ledger record. ID is omitted while unassigned.
func (f LogFields) WithRecord(r core.Record) LogFields {
	if r.ID != 0 {
		f[FieldID] = r.ID
	}
	f[FieldKind] = r.Kind.String()
	f[FieldCategory] = r.Category
	f[FieldAmount] = r.Amount
	if !r.Date.IsEmpty() {
		f[FieldDate] = r.Date.String()
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
