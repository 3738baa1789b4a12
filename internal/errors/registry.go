package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Index out of range",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Identity counter exhausted",
		Detail:   "An identity list allocated more ids than a uint64 can hold.",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Slot type changed between passes",
		Detail:   "A node read a remembered slot with a different type than the one stored at the same position. Remember calls must run in the same order on every pass.",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Runtime disposed",
		Detail:   "The runtime was disposed and cannot run another pass.",
	},
	"E006": {
		Category: CategoryRuntime,
		Message:  "Identity path evaluated twice",
		Detail:   "Two nodes in the same pass share one identity path, so they would share remembered state. Give siblings distinct child keys.",
	},
	"E009": {
		Category: CategoryProtocol,
		Message:  "Handler not found",
		Detail:   "The event handler for this element was not found. The view may have re-rendered with different handlers.",
	},

	// ============================================
	// Value Errors (E003, E020-E029)
	// ============================================

	"E003": {
		Category: CategoryValue,
		Message:  "Unsupported value",
		Detail:   "Only null, numbers, strings, arrays and objects can be edited.",
	},
	"E020": {
		Category: CategoryValue,
		Message:  "Malformed document",
	},

	// ============================================
	// Storage Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryStorage,
		Message:  "Document not found",
	},
	"E011": {
		Category: CategoryStorage,
		Message:  "Document write failed",
	},
	"E012": {
		Category: CategoryStorage,
		Message:  "Unsupported store URL",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
