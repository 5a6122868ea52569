package errors

// Error codes for standardized error responses. Codes are part of the wire
// contract with the presentation layer; message text is free to change.
const (
	// Caller mistakes
	ErrCodeInvalidInput   = "invalid_input"
	ErrCodeInvalidPayload = "invalid_payload"

	// WebSocket protocol
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Persistence
	ErrCodeSaveFailed             = "save_failed"
	ErrCodeClearFailed            = "clear_failed"
	ErrCodePersistenceUnavailable = "persistence_unavailable"

	// Server
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternalError    = "internal_error"
)
