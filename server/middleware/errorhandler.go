package middleware

import (
	"net/http"

	"github.com/kbukum/problemkit/errors"
	"github.com/kbukum/problemkit/logger"
	"github.com/kbukum/problemkit/observability"
	"github.com/kbukum/problemkit/problem"
)

// errorHandlerComponent is the log component used when the origin of a
// failure is unknown.
const errorHandlerComponent = "error-handler"

// Handler handles a request and reports failure by returning an error.
// A handler that returns an error must not have written the response.
type Handler interface {
	ServeHTTPE(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTPE calls f(w, r).
func (f HandlerFunc) ServeHTTPE(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// Adapt lifts a plain http.Handler into a Handler. Such a handler can only
// fail by panicking.
func Adapt(h http.Handler) Handler {
	return HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	})
}

// ErrorHandlerOption configures ErrorHandler and GinErrorHandler.
type ErrorHandlerOption func(*translator)

// WithEncoder replaces the problem body encoder.
func WithEncoder(enc problem.Encoder) ErrorHandlerOption {
	return func(t *translator) {
		if enc != nil {
			t.encoder = enc
		}
	}
}

// WithContentType replaces the problem media type.
func WithContentType(contentType string) ErrorHandlerOption {
	return func(t *translator) {
		if contentType != "" {
			t.contentType = contentType
		}
	}
}

// WithMaskInternalDetail hides unclassified failure messages from clients.
// They are still logged.
func WithMaskInternalDetail(mask bool) ErrorHandlerOption {
	return func(t *translator) { t.build.MaskInternalDetail = mask }
}

// WithTitles overrides problem titles per status code.
func WithTitles(titles map[int]string) ErrorHandlerOption {
	return func(t *translator) {
		merged := make(map[int]string, len(titles))
		for k, v := range titles {
			merged[k] = v
		}
		t.build.Titles = merged
	}
}

// WithMetrics counts every translated failure.
func WithMetrics(m *observability.FailureMetrics) ErrorHandlerOption {
	return func(t *translator) { t.metrics = m }
}

// WithStackTrace controls whether panic stacks are added to error records.
// It is on by default.
func WithStackTrace(enabled bool) ErrorHandlerOption {
	return func(t *translator) { t.stackTrace = enabled }
}

// ErrorHandler returns the error translation middleware. Every failure
// returned or panicked by next is classified, logged once and written as an
// application/problem+json response. Successful requests pass through
// untouched.
//
// If next has already started the response, the failure is only logged.
func ErrorHandler(log *logger.Logger, opts ...ErrorHandlerOption) func(Handler) http.Handler {
	t := newTranslator(log, opts...)
	return func(next Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			rec, err := invoke(next, sw, r)
			if err == nil {
				return
			}
			t.translate(sw, r, err, rec, sw.committedStatus())
		})
	}
}

// Errors is ErrorHandler for plain http.Handlers, usable in Chain.
func Errors(log *logger.Logger, opts ...ErrorHandlerOption) Middleware {
	eh := ErrorHandler(log, opts...)
	return func(next http.Handler) http.Handler {
		return eh(Adapt(next))
	}
}

// translator holds the immutable translation settings shared by all
// requests.
type translator struct {
	log         *logger.Logger
	encoder     problem.Encoder
	contentType string
	build       problem.BuildOptions
	metrics     *observability.FailureMetrics
	stackTrace  bool
}

func newTranslator(log *logger.Logger, opts ...ErrorHandlerOption) *translator {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	t := &translator{
		log:         log,
		encoder:     problem.DefaultEncoder,
		contentType: problem.ContentType,
		stackTrace:  true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// translate classifies err, reports it and, unless the response is already
// committed, writes the problem response. committedStatus is the status
// already sent to the client, or 0 when nothing has been sent.
//
// A panic inside translation itself still produces a bare 500.
func (t *translator) translate(w http.ResponseWriter, r *http.Request, err error, rec *recovered, committedStatus int) {
	committed := committedStatus != 0
	wrote := false
	defer func() {
		if v := recover(); v != nil && !committed && !wrote {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}()

	f := errors.Classify(err)
	d := problem.Build(f, problem.RequestInfo{
		Path:      r.URL.Path,
		TraceID:   observability.TraceID(r.Context()),
		RequestID: requestIDFrom(r),
	}, t.build)

	body, encErr := t.encode(d)

	t.report(r, failureReport{
		failure:   f,
		problem:   d,
		recovered: rec,
		committed: committedStatus,
		encodeErr: encErr,
	})

	if committed {
		return
	}
	wrote = true
	if encErr != nil {
		w.WriteHeader(d.Status)
		return
	}
	_ = problem.WriteBody(w, d.Status, body, t.contentType)
}

// encode never panics; a panicking encoder is treated as a failed encode.
func (t *translator) encode(d *problem.Details) (body []byte, err error) {
	defer func() {
		if v := recover(); v != nil {
			body, err = nil, panicError(v)
		}
	}()
	return t.encoder(d)
}
