package constants

// Engine error codes
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL"
)

var EngineErrorMessages = map[string]string{
	ErrCodeNotFound:     "The requested record does not exist",
	ErrCodeInvalidInput: "The request contains invalid values",
	ErrCodeConflict:     "The aircraft was updated concurrently. Please retry",
	ErrCodeInternal:     "The server could not complete the request",
}

// GetEngineErrorMessage returns the human-readable message for an engine error code
func GetEngineErrorMessage(code string) string {
	if msg, exists := EngineErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
