package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldPurchaseID = "purchase_id"
	FieldCategory   = "category"
	FieldFilename   = "filename"
	FieldFileSize   = "file_size"
	FieldMimeType   = "mime_type"
	FieldUploadID   = "upload_id"
	FieldState      = "state"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentGateway   = "gateway"
	ComponentDashboard = "dashboard"
	ComponentMutation  = "mutation"
	ComponentDrilldown = "drilldown"
	ComponentSession   = "session"
	ComponentEvents    = "events"
)

// Operations defines standard operation names
const (
	OpFetch    = "fetch"
	OpUpload   = "upload"
	OpDelete   = "delete"
	OpResolve  = "resolve"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
