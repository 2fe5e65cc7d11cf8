package domain

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("access denied")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError is a rejected input the caller can fix and resubmit.
// Message is safe to show to clients as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrTitleRequired   = &ValidationError{Message: "Title is required"}
	ErrTitleEmpty      = &ValidationError{Message: "Title cannot be empty"}
	ErrInvalidStatus   = &ValidationError{Message: "Invalid status"}
	ErrInvalidPriority = &ValidationError{Message: "Invalid priority"}
	ErrNoUpdateFields  = &ValidationError{Message: "No data provided"}

	ErrRegistrationIncomplete = &ValidationError{Message: "Username, email and password are required"}
)

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
