package storage

import "fmt"

// These constants mirror domain error codes to avoid circular imports.
const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

// StoreError represents a storage-specific error with a code and message.
type StoreError struct {
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StoreError) ErrorCode() string {
	return e.Code
}

// ErrUnknownProvider creates an error for unknown store providers.
func ErrUnknownProvider(provider string) error {
	return &StoreError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown store provider: %s", provider),
	}
}
