package errors

import (
	stderrors "errors"
	"fmt"
)

// unknownMessage is used when an error cannot describe itself.
const unknownMessage = "An unexpected error occurred."

// validationCarrier is satisfied by errors that carry validation messages.
type validationCarrier interface {
	ValidationMessages() []string
}

// notFoundCarrier is satisfied by errors that identify a missing resource.
type notFoundCarrier interface {
	NotFoundResource() (resource, id string)
}

// Classify maps err to exactly one Failure. It returns nil only for a nil
// error and never panics.
//
// A Failure anywhere in the wrap chain is returned unchanged. Otherwise an
// error exposing ValidationMessages (non-empty) or NotFoundResource is
// converted to the matching variant, and everything else becomes an
// UnclassifiedError with err as its cause.
func Classify(err error) (f Failure) {
	if err == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			f = &UnclassifiedError{Message: unknownMessage, Cause: err}
		}
	}()

	if existing, ok := AsFailure(err); ok {
		if isNilFailure(existing) {
			// A typed nil carries nothing to report.
			return &UnclassifiedError{Message: unknownMessage, Cause: err}
		}
		return existing
	}

	source := sourceOf(err)

	var vc validationCarrier
	if stderrors.As(err, &vc) {
		if msgs := vc.ValidationMessages(); len(msgs) > 0 {
			return Validation(msgs...).WithSource(source)
		}
	}

	var nc notFoundCarrier
	if stderrors.As(err, &nc) {
		resource, id := nc.NotFoundResource()
		return NotFound(resource, id).WithSource(source)
	}

	return Unclassified(err).WithSource(source)
}

// AsFailure returns the first Failure in err's chain.
func AsFailure(err error) (Failure, bool) {
	var f Failure
	if stderrors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// isNilFailure reports whether f is a nil pointer to one of the variants.
func isNilFailure(f Failure) bool {
	switch v := f.(type) {
	case *ValidationError:
		return v == nil
	case *NotFoundError:
		return v == nil
	case *UnclassifiedError:
		return v == nil
	}
	return false
}

// IsKind reports whether err classifies as kind k.
func IsKind(err error, k Kind) bool {
	f := Classify(err)
	return f != nil && f.Kind() == k
}

// SourceOf returns the originating component recorded anywhere in err's
// chain, or "".
func SourceOf(err error) string {
	if err == nil {
		return ""
	}
	return sourceOf(err)
}

func sourceOf(err error) string {
	var s Sourced
	if stderrors.As(err, &s) {
		return s.Source()
	}
	return ""
}

// safeMessage returns err.Error(), containing panics from broken
// implementations.
func safeMessage(err error) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("%s (%T)", unknownMessage, err)
		}
	}()
	msg = err.Error()
	if msg == "" {
		msg = unknownMessage
	}
	return msg
}
