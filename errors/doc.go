// Package errors defines the closed set of failures that the HTTP error
// handler understands and classifies arbitrary errors into them.
//
// There are exactly three kinds of failure:
//
//   - ValidationError: caller input was rejected (400)
//   - NotFoundError: a resource lookup failed (404)
//   - UnclassifiedError: anything else (500)
//
// Handlers return these (or wrap them with fmt.Errorf and %w) and the
// middleware turns them into problem responses:
//
//	if user == nil {
//	    return errors.NotFound("User", id)
//	}
//
// Classify is total: every non-nil error maps to exactly one Failure.
package errors
