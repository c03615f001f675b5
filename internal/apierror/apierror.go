// Package apierror defines the error envelopes returned to API clients.
// Every 4xx/5xx body goes through here so responses stay uniform and no
// internal detail (SQL errors, stack traces) ever reaches the POS screens.
package apierror

// APIError is the single-message envelope used by most error responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field failures from request validation.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}
