// Package apierror holds the error format rendered by the API.
//
// Tags in use: validation, duplicate-email, duplicate-username,
// invalid-credentials, unauthenticated, invalid-token, not-found.
package apierror

import "net/http"

type (
	// An Error represents the error format that can be rendered by the server.
	Error struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if apierr, ok := err.(*Error); ok && apierr.HTTPCode > 0 {
		return apierr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given message.
func New(message string) *Error {
	return &Error{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new Error with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *Error {
	return &Error{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.FieldError.Message
}
