package problem

import (
	"net/http"

	"github.com/goccy/go-json"
)

// ContentType is the media type of a problem details body.
const ContentType = "application/problem+json"

// Extension keys set by Build.
const (
	ExtErrors    = "errors"
	ExtTraceID   = "traceId"
	ExtRequestID = "requestId"
)

// Details is the problem details body sent to clients.
type Details struct {
	Type     string
	Title    string
	Status   int
	Detail   string
	Instance string
	// Extensions holds variant-specific members. Keys that collide with a
	// standard member are ignored on output.
	Extensions map[string]any
}

// Encoder serializes a value to JSON.
type Encoder func(v any) ([]byte, error)

// DefaultEncoder encodes with goccy/go-json.
var DefaultEncoder Encoder = json.Marshal

var standardMembers = map[string]bool{
	"type": true, "title": true, "status": true, "detail": true, "instance": true,
}

// SetExtension sets an extension member and returns the receiver.
func (d *Details) SetExtension(key string, value any) *Details {
	if d.Extensions == nil {
		d.Extensions = make(map[string]any)
	}
	d.Extensions[key] = value
	return d
}

// MarshalJSON flattens extensions into the top-level object. Empty detail
// and instance are emitted as null.
func (d Details) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extensions)+5)
	for k, v := range d.Extensions {
		if !standardMembers[k] {
			out[k] = v
		}
	}
	if d.Type != "" {
		out["type"] = d.Type
	}
	out["title"] = d.Title
	out["status"] = d.Status
	out["detail"] = nullable(d.Detail)
	out["instance"] = nullable(d.Instance)
	return json.Marshal(out)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Write encodes d and writes it with the given content type and d.Status.
// If encoding fails, only the status is written and the encode error is
// returned.
func Write(w http.ResponseWriter, d *Details, enc Encoder, contentType string) error {
	if enc == nil {
		enc = DefaultEncoder
	}
	body, err := enc(d)
	if err != nil {
		w.WriteHeader(d.Status)
		return err
	}
	return WriteBody(w, d.Status, body, contentType)
}

// WriteBody writes an already encoded problem body. Headers left behind by
// a handler that failed before writing are overridden.
func WriteBody(w http.ResponseWriter, status int, body []byte, contentType string) error {
	if contentType == "" {
		contentType = ContentType
	}
	h := w.Header()
	h.Del("Content-Length")
	h.Del("Content-Encoding")
	h.Set("Content-Type", contentType)
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}
