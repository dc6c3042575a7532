package middleware_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/kbukum/problemkit/logger"
)

// problemBody mirrors the wire shape of a problem response.
type problemBody struct {
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Status    int      `json:"status"`
	Detail    *string  `json:"detail"`
	Instance  *string  `json:"instance"`
	Errors    []string `json:"errors"`
	TraceID   string   `json:"traceId"`
	RequestID string   `json:"requestId"`
}

func newTestLogger() (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := &logger.Config{Level: "debug", Format: "json", Output: "stdout"}
	return logger.NewWithWriter(cfg, "test", buf), buf
}

// records parses every JSON log line written to buf.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			t.Fatalf("log line is not JSON: %v: %s", err, line)
		}
		out = append(out, rec)
	}
	return out
}

func onlyRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	recs := records(t, buf)
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 log record, got %d: %s", len(recs), buf.String())
	}
	return recs[0]
}

func decodeProblem(t *testing.T, body []byte) problemBody {
	t.Helper()
	var p problemBody
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("body is not JSON: %v: %s", err, body)
	}
	return p
}

func strPtr(p *string) string {
	if p == nil {
		return "<null>"
	}
	return *p
}
