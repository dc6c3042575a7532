package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/problemkit/logger"
	"github.com/kbukum/problemkit/server"
)

func newDemo(t *testing.T) http.Handler {
	t.Helper()
	var sb strings.Builder
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, serviceName, &sb)
	cfg := server.Config{Mode: gin.TestMode}
	cfg.ApplyDefaults()
	srv := server.New(cfg, log)
	registerExamples(srv.GinEngine().Group("/api/examples"))
	return srv.Handler()
}

func TestExampleRoutes(t *testing.T) {
	h := newDemo(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
		detail string
		errors []string
	}{
		{http.MethodGet, "/api/examples/success", "", http.StatusOK, "", nil},
		{http.MethodGet, "/api/examples/bad-request", "", http.StatusBadRequest, "Bad request. See list of errors for details.", []string{"Field 1 had an error."}},
		{http.MethodGet, "/api/examples/not-found", "", http.StatusNotFound, "SomeResource: 123 not found.", nil},
		{http.MethodGet, "/api/examples/server-error", "", http.StatusInternalServerError, "Something went wrong.", nil},
		{http.MethodGet, "/api/examples/panic", "", http.StatusInternalServerError, "handler panicked", nil},
		{http.MethodPost, "/api/examples/widgets", `{"name":"w","color":"red","count":3}`, http.StatusCreated, "", nil},
		{http.MethodPost, "/api/examples/widgets", `{"color":"pink","count":0}`, http.StatusBadRequest, "Bad request. See list of errors for details.", nil},
		{http.MethodPost, "/api/examples/widgets", `[`, http.StatusBadRequest, "Bad request. See list of errors for details.", []string{"request body must be a JSON object"}},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.detail == "" {
				return
			}
			var body struct {
				Status   int      `json:"status"`
				Detail   string   `json:"detail"`
				Instance string   `json:"instance"`
				Errors   []string `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tc.status || body.Detail != tc.detail || body.Instance != tc.path {
				t.Errorf("unexpected problem %+v", body)
			}
			if tc.errors != nil && strings.Join(body.Errors, "|") != strings.Join(tc.errors, "|") {
				t.Errorf("errors = %v, want %v", body.Errors, tc.errors)
			}
			if tc.errors == nil && tc.status == http.StatusBadRequest && len(body.Errors) == 0 {
				t.Error("expected validation messages")
			}
		})
	}
}
