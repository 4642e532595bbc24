package errors

import (
	"errors"
	"net/http"
)

var (
	ErrTooManyLoginAttempts = errors.New("too many login attempts, please try again later")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("user with this email already exists")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrTaskNotFound         = errors.New("task not found")
	ErrForbidden            = errors.New("permission denied")
)

// Validation is a 400-class error carrying a caller-facing message.
type Validation struct {
	Message string
}

func (e *Validation) Error() string {
	return e.Message
}

// NewValidation creates a validation error with the given message.
func NewValidation(message string) error {
	return &Validation{Message: message}
}

// HTTPStatus maps an error to its transport status code. Invalid credentials,
// throttled logins, and bad tokens all collapse to 401 so callers cannot tell
// which check failed.
func HTTPStatus(err error) int {
	var ve *Validation
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrEmailAlreadyInUse):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTooManyLoginAttempts),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
