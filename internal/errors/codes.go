package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionInvalidRecord ErrorCode = "TRANSACTION_001"
	TransactionEmptyBatch    ErrorCode = "TRANSACTION_002"
	TransactionStoreFailure  ErrorCode = "TRANSACTION_003"
)

// Report error codes (REPORT_*)
const (
	ReportSourceUnavailable ErrorCode = "REPORT_001"
	ReportGenerationFailed  ErrorCode = "REPORT_002"
)

// Generation error codes (GENERATION_*)
const (
	GenerationUnavailable ErrorCode = "GENERATION_001"
	GenerationTimeout     ErrorCode = "GENERATION_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidDate:   "Invalid date format or range",

	// Transaction errors
	TransactionInvalidRecord: "Transaction record is invalid",
	TransactionEmptyBatch:    "Transaction batch is empty",
	TransactionStoreFailure:  "Failed to store transactions",

	// Report errors
	ReportSourceUnavailable: "Transaction data source is unavailable",
	ReportGenerationFailed:  "Failed to generate report",

	// Generation errors
	GenerationUnavailable: "Text generation backend is unavailable",
	GenerationTimeout:     "Text generation request timed out",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
