package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists with that email")
	ErrInvalidEmailDomain = errors.New("invalid email domain")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfRoleChange     = errors.New("cannot change your own role")
	ErrSelfDelete         = errors.New("cannot delete your own account")

	// ErrPlaintextCredential is returned by stores asked to persist a
	// credential that is not a hash.
	ErrPlaintextCredential = errors.New("refusing to store plaintext credential")

	ErrAlumniNotFound = errors.New("alumni not found")
	ErrInvalidID      = errors.New("invalid id")
)

// ValidationError reports the first rejected field of a payload.
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

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
