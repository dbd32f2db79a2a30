package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldLedgerPath  = "ledger_path"
	FieldRow         = "row"
	FieldDate        = "date"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldFilter      = "filter"
	FieldMonths      = "months"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentReport   = "report"
	ComponentForecast = "forecast"
	ComponentCache    = "cache"
	ComponentBackend  = "backend"
)

// Operations defines standard operation names
const (
	OpAppend   = "append"
	OpList     = "list"
	OpFilter   = "filter"
	OpSummary  = "summary"
	OpForecast = "forecast"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
