package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldExpenseID = "expense_id"
	FieldUID       = "uid"
	FieldTier      = "tier"
	FieldBucket    = "bucket"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentStore    = "store"
	ComponentIdentity = "identity"
	ComponentEvents   = "events"
)
