package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminEmailTaken    = errors.New("this email is already registered")
	ErrAdminNotFound      = errors.New("admin not found")

	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeEmailTaken = errors.New("employee email already exists")
)

// ValidationError reports a rejected input field. Message is safe to show to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
