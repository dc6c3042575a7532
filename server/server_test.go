package server_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/problemkit/errors"
	"github.com/kbukum/problemkit/logger"
	"github.com/kbukum/problemkit/problem"
	"github.com/kbukum/problemkit/server"
	"github.com/kbukum/problemkit/server/middleware"
)

func newTestServer(t *testing.T, mutate func(*server.Config)) (*server.Server, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "server-test", buf)
	cfg := server.Config{Mode: gin.TestMode}
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	return server.New(cfg, log), buf
}

func do(s *server.Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func logLines(buf *bytes.Buffer) int {
	n := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func TestServerTranslatesFailuresFromEveryMount(t *testing.T) {
	s, buf := newTestServer(t, nil)
	s.GinEngine().GET("/gin/missing", func(c *gin.Context) {
		server.RespondWithError(c, errors.NotFound("Book", "42"))
	})
	s.GinEngine().GET("/gin/ok", func(c *gin.Context) {
		server.RespondOK(c, gin.H{"title": "Dune"})
	})
	s.HandleE("/raw/invalid", errorFunc(errors.Validation("isbn is required")))
	s.Handle("/raw/panic", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("raw handler exploded")
	}))

	tests := []struct {
		path   string
		status int
		ct     string
	}{
		{"/gin/missing", http.StatusNotFound, problem.ContentType},
		{"/gin/ok", http.StatusOK, "application/json; charset=utf-8"},
		{"/raw/invalid", http.StatusBadRequest, problem.ContentType},
		{"/raw/panic", http.StatusInternalServerError, problem.ContentType},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			buf.Reset()
			rec := do(s, http.MethodGet, tc.path)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tc.ct {
				t.Errorf("Content-Type = %q, want %q", ct, tc.ct)
			}
			if rec.Header().Get("X-Request-Id") == "" {
				t.Error("missing X-Request-Id")
			}
			wantLogs := 0
			if tc.status >= 400 {
				wantLogs = 1
			}
			if got := logLines(buf); got != wantLogs {
				t.Errorf("log records = %d, want %d: %s", got, wantLogs, buf.String())
			}
		})
	}
}

func TestServerMasksInternalDetail(t *testing.T) {
	s, _ := newTestServer(t, func(c *server.Config) { c.Errors.MaskInternalDetail = true })
	s.GinEngine().GET("/fail", func(c *gin.Context) {
		server.RespondWithError(c, stderrors.New("connection refused to 10.0.0.3"))
	})

	rec := do(s, http.MethodGet, "/fail")

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["detail"] != problem.MaskedDetail {
		t.Errorf("detail = %v, want masked", body["detail"])
	}
}

func TestRespondWithErrorNil(t *testing.T) {
	s, buf := newTestServer(t, nil)
	s.GinEngine().GET("/noop", func(c *gin.Context) {
		server.RespondWithError(c, nil)
		server.RespondNoContent(c)
	})

	rec := do(s, http.MethodGet, "/noop")

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestRegisterHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	s.RegisterHealth("books")

	rec := do(s, http.MethodGet, "/health")

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"service":"books"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteIsNotAFailure(t *testing.T) {
	s, buf := newTestServer(t, nil)

	rec := do(s, http.MethodGet, "/nope")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("routing misses are not logged: %s", buf.String())
	}
}

func errorFunc(err error) middleware.Handler {
	return middleware.HandlerFunc(func(http.ResponseWriter, *http.Request) error { return err })
}
