package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// statusWriter wraps http.ResponseWriter to record whether the response has
// been committed and with which status. It delegates Flush, Hijack and
// Unwrap so streaming and connection upgrades keep working.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(code int) {
	// 1xx informational headers (other than 101) do not commit the response.
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		sw.ResponseWriter.WriteHeader(code)
		return
	}
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
	}
	return sw.ResponseWriter.Write(b)
}

// committedStatus returns the status already sent, or 0 if the response is
// still open.
func (sw *statusWriter) committedStatus() int {
	if !sw.wroteHeader {
		return 0
	}
	return sw.status
}

// Flush implements http.Flusher. Flushing commits the response.
func (sw *statusWriter) Flush() {
	sw.wroteHeader = true
	if f, ok := sw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker when the underlying writer does. A
// hijacked connection counts as committed.
func (sw *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("middleware: %T does not implement http.Hijacker", sw.ResponseWriter)
	}
	conn, rw, err := hj.Hijack()
	if err == nil {
		sw.status = http.StatusSwitchingProtocols
		sw.wroteHeader = true
	}
	return conn, rw, err
}

// Unwrap returns the underlying ResponseWriter so http.ResponseController
// can discover optional interfaces on the original writer.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
