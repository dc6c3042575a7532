package errors

import "net/http"

// Kind identifies one of the three failure variants.
type Kind int

const (
	// KindUnclassified is the catch-all for errors that carry no known shape.
	KindUnclassified Kind = iota
	// KindValidation indicates rejected caller input.
	KindValidation
	// KindNotFound indicates a failed resource lookup.
	KindNotFound
)

// String returns the lowercase name of the kind, used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "unclassified"
	}
}

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var kindCodes = map[Kind]ErrorCode{
	KindValidation:   ErrCodeInvalidInput,
	KindNotFound:     ErrCodeNotFound,
	KindUnclassified: ErrCodeInternal,
}

var kindStatuses = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindUnclassified: http.StatusInternalServerError,
}

// CodeOf returns the error code for a kind.
func CodeOf(k Kind) ErrorCode {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return ErrCodeInternal
}

// StatusOf returns the HTTP status code for a kind.
func StatusOf(k Kind) int {
	if s, ok := kindStatuses[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}
