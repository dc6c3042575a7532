package problem

import (
	"net/http"

	"github.com/kbukum/problemkit/errors"
)

// MaskedDetail replaces unclassified messages when masking is enabled.
const MaskedDetail = "An unexpected error occurred. Please try again or contact support."

// RequestInfo is the ambient request context copied into a problem.
type RequestInfo struct {
	Path      string
	TraceID   string
	RequestID string
}

// BuildOptions tunes Build. The zero value is ready to use.
type BuildOptions struct {
	// Titles overrides the default title per status code.
	Titles map[int]string
	// MaskInternalDetail hides the message of unclassified failures.
	MaskInternalDetail bool
}

var defaultTitles = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Not Found",
	http.StatusInternalServerError: "An error occurred while processing your request.",
}

var defaultTypes = map[int]string{
	http.StatusBadRequest:          "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	http.StatusNotFound:            "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	http.StatusInternalServerError: "https://tools.ietf.org/html/rfc9110#section-15.6.1",
}

// Title returns the title for status, honouring overrides.
func (o BuildOptions) Title(status int) string {
	if t, ok := o.Titles[status]; ok {
		return t
	}
	if t, ok := defaultTitles[status]; ok {
		return t
	}
	return http.StatusText(status)
}

// Build creates the problem details for a classified failure. It has no side
// effects and returns nil for a nil failure.
func Build(f errors.Failure, req RequestInfo, opts BuildOptions) *Details {
	if f == nil {
		return nil
	}

	status := f.HTTPStatus()
	d := &Details{
		Type:     defaultTypes[status],
		Title:    opts.Title(status),
		Status:   status,
		Instance: req.Path,
	}

	switch v := f.(type) {
	case *errors.ValidationError:
		d.Detail = errors.ValidationSummary
		msgs := make([]string, len(v.Messages))
		copy(msgs, v.Messages)
		d.SetExtension(ExtErrors, msgs)
	case *errors.NotFoundError:
		d.Detail = v.Detail()
	case *errors.UnclassifiedError:
		d.Detail = v.Message
		if opts.MaskInternalDetail {
			d.Detail = MaskedDetail
		}
	}

	if req.TraceID != "" {
		d.SetExtension(ExtTraceID, req.TraceID)
	}
	if req.RequestID != "" {
		d.SetExtension(ExtRequestID, req.RequestID)
	}
	return d
}
