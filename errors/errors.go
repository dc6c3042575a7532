package errors

import (
	"fmt"
	"sort"
)

// ValidationSummary is the message of every ValidationError.
const ValidationSummary = "Bad request. See list of errors for details."

// Failure is a classified failure. The set of implementations is closed:
// *ValidationError, *NotFoundError and *UnclassifiedError.
type Failure interface {
	error
	// Kind reports which variant this failure is.
	Kind() Kind
	// Code returns the machine-readable code of the variant.
	Code() ErrorCode
	// HTTPStatus returns the status code the variant maps to.
	HTTPStatus() int

	failure()
}

// Sourced is implemented by errors that know which component raised them.
type Sourced interface {
	Source() string
}

// Compile-time checks.
var (
	_ Failure = (*ValidationError)(nil)
	_ Failure = (*NotFoundError)(nil)
	_ Failure = (*UnclassifiedError)(nil)
	_ Sourced = (*ValidationError)(nil)
	_ Sourced = (*NotFoundError)(nil)
	_ Sourced = (*UnclassifiedError)(nil)
)

// origin carries the optional originating component shared by all variants.
type origin struct {
	source string
}

// Source returns the component that raised the failure, or "".
func (o origin) Source() string { return o.source }

// --- Validation ---

// ValidationError reports one or more rejected fields or rules.
type ValidationError struct {
	origin
	// Messages holds the violations in the order they were found. Never empty.
	Messages []string
}

// FieldMessages groups the messages reported for a single field.
type FieldMessages struct {
	Field    string
	Messages []string
}

// Validation creates a ValidationError from explicit messages. An empty list
// is replaced by the summary so the error always carries at least one message.
func Validation(messages ...string) *ValidationError {
	if len(messages) == 0 {
		messages = []string{ValidationSummary}
	}
	out := make([]string, len(messages))
	copy(out, messages)
	return &ValidationError{Messages: out}
}

// ValidationFromFields flattens per-field messages into a single list,
// preserving field order and then message order within each field.
func ValidationFromFields(fields []FieldMessages) *ValidationError {
	var messages []string
	for _, f := range fields {
		messages = append(messages, f.Messages...)
	}
	return Validation(messages...)
}

// ValidationFromMap is ValidationFromFields for a map. Fields are visited in
// sorted key order so the result is deterministic.
func ValidationFromMap(fields map[string][]string) *ValidationError {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]FieldMessages, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, FieldMessages{Field: k, Messages: fields[k]})
	}
	return ValidationFromFields(ordered)
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%d errors)", ErrCodeInvalidInput, ValidationSummary, len(e.Messages))
}

// Kind returns KindValidation.
func (e *ValidationError) Kind() Kind { return KindValidation }

// Code returns ErrCodeInvalidInput.
func (e *ValidationError) Code() ErrorCode { return ErrCodeInvalidInput }

// HTTPStatus returns 400.
func (e *ValidationError) HTTPStatus() int { return StatusOf(KindValidation) }

// ValidationMessages exposes the messages structurally.
func (e *ValidationError) ValidationMessages() []string { return e.Messages }

// WithSource records the originating component and returns the receiver.
func (e *ValidationError) WithSource(component string) *ValidationError {
	e.source = component
	return e
}

func (*ValidationError) failure() {}

// --- Not found ---

// NotFoundError identifies the resource lookup that failed.
type NotFoundError struct {
	origin
	Resource string
	ID       string
}

// NotFound creates a NotFoundError for the given resource kind and id.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// FormatResourceError creates a NotFoundError for any id type.
func FormatResourceError(resource string, id any) *NotFoundError {
	return NotFound(resource, fmt.Sprintf("%v", id))
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeNotFound, e.Detail())
}

// Detail returns the client-facing description, e.g. "User: 42 not found.".
func (e *NotFoundError) Detail() string {
	return fmt.Sprintf("%s: %s not found.", e.Resource, e.ID)
}

// Kind returns KindNotFound.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// Code returns ErrCodeNotFound.
func (e *NotFoundError) Code() ErrorCode { return ErrCodeNotFound }

// HTTPStatus returns 404.
func (e *NotFoundError) HTTPStatus() int { return StatusOf(KindNotFound) }

// NotFoundResource exposes the resource kind and id structurally.
func (e *NotFoundError) NotFoundResource() (resource, id string) { return e.Resource, e.ID }

// WithSource records the originating component and returns the receiver.
func (e *NotFoundError) WithSource(component string) *NotFoundError {
	e.source = component
	return e
}

func (*NotFoundError) failure() {}

// --- Unclassified ---

// UnclassifiedError wraps any error that has no more specific shape.
type UnclassifiedError struct {
	origin
	// Message is the displayable message of the wrapped error.
	Message string
	// Cause is the original error, kept for diagnostics.
	Cause error
}

// Unclassified wraps cause as an UnclassifiedError.
func Unclassified(cause error) *UnclassifiedError {
	e := &UnclassifiedError{Cause: cause}
	if cause != nil {
		e.Message = safeMessage(cause)
	}
	return e
}

// Unclassifiedf creates an UnclassifiedError from a formatted message.
func Unclassifiedf(format string, args ...any) *UnclassifiedError {
	return Unclassified(fmt.Errorf(format, args...))
}

func (e *UnclassifiedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeInternal, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *UnclassifiedError) Unwrap() error { return e.Cause }

// Kind returns KindUnclassified.
func (e *UnclassifiedError) Kind() Kind { return KindUnclassified }

// Code returns ErrCodeInternal.
func (e *UnclassifiedError) Code() ErrorCode { return ErrCodeInternal }

// HTTPStatus returns 500.
func (e *UnclassifiedError) HTTPStatus() int { return StatusOf(KindUnclassified) }

// WithSource records the originating component and returns the receiver.
func (e *UnclassifiedError) WithSource(component string) *UnclassifiedError {
	e.source = component
	return e
}

func (*UnclassifiedError) failure() {}
