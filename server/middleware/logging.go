package middleware

import (
	"fmt"
	"net/http"

	"github.com/kbukum/problemkit/errors"
	"github.com/kbukum/problemkit/logger"
	"github.com/kbukum/problemkit/observability"
	"github.com/kbukum/problemkit/problem"
)

type failureReport struct {
	failure   errors.Failure
	problem   *problem.Details
	recovered *recovered
	committed int
	encodeErr error
}

// report emits exactly one log record for a failure and updates telemetry.
// Nothing in here may stop the response from being written, so panics from
// the sink are swallowed.
func (t *translator) report(r *http.Request, fr failureReport) {
	defer func() { _ = recover() }()

	f := fr.failure
	component := failureComponent(f, fr.recovered)
	log := t.log.WithContext(r.Context()).WithComponent(component)

	fields := map[string]interface{}{
		logger.FieldMethod: r.Method,
		logger.FieldPath:   r.URL.Path,
		logger.FieldStatus: fr.problem.Status,
		logger.FieldKind:   f.Kind().String(),
		logger.FieldCode:   string(f.Code()),
	}
	if id := requestIDFrom(r); id != "" {
		fields[logger.FieldRequestID] = id
	}
	if fr.committed != 0 {
		fields["response_committed"] = true
		fields["committed_status"] = fr.committed
	}
	if fr.encodeErr != nil {
		fields["encode_error"] = fr.encodeErr.Error()
	}

	switch v := f.(type) {
	case *errors.ValidationError:
		fields["errors"] = v.Messages
		log.Warn(fr.problem.Detail, fields)
	case *errors.NotFoundError:
		fields["resource"] = v.Resource
		fields["resource_id"] = v.ID
		log.Warn(fr.problem.Detail, fields)
	case *errors.UnclassifiedError:
		fields[logger.FieldError] = v.Message
		if v.Cause != nil {
			// fmt contains panics and nil receivers in the cause's Error method.
			fields[logger.FieldCause] = fmt.Sprint(v.Cause)
		}
		if fr.recovered != nil {
			fields["panic"] = true
			if t.stackTrace {
				fields[logger.FieldStack] = string(fr.recovered.stack)
			}
		}
		log.Error(v.Message, fields)
	}

	observability.RecordFailure(r.Context(), f.Kind().String(), string(f.Code()), errors.SourceOf(f), fr.problem.Status, f)
	t.metrics.RecordFailure(r.Context(), f.Kind().String(), fr.problem.Status, errors.SourceOf(f))
}

// failureComponent picks the log component: the source recorded on the
// failure, then the function that panicked, then the error handler itself.
func failureComponent(f errors.Failure, rec *recovered) string {
	if s := errors.SourceOf(f); s != "" {
		return s
	}
	if rec != nil && rec.origin != "" {
		return rec.origin
	}
	return errorHandlerComponent
}
