package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldID          = "id"
	FieldCount       = "count"
	FieldPath        = "path"
	FieldBackend     = "backend"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldDate        = "date"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentCharts  = "charts"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpImport = "import"
	OpExport = "export"
	OpLoad   = "load"
	OpSave   = "save"
)
