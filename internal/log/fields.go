package log

// Field names for structured records.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldLoanID    = "loan_id"
	FieldPersonID  = "person_id"
	FieldValue     = "value"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldBackend   = "backend"
	FieldCommand   = "command"
	FieldVersion   = "version"
)

// Components.
const (
	ComponentApp     = "app"
	ComponentBook    = "book"
	ComponentCommand = "command"
	ComponentStorage = "storage"
	ComponentTUI     = "tui"
)

// Operations.
const (
	OpAdd      = "add"
	OpLink     = "link"
	OpDelete   = "delete"
	OpMark     = "mark"
	OpUnmark   = "unmark"
	OpLoad     = "load"
	OpSave     = "save"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
	OpRecover  = "recover"
)
