package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPanicError(t *testing.T) {
	sentinel := errors.New("typed")
	if got := panicError(sentinel); got != sentinel {
		t.Errorf("error values should be kept, got %v", got)
	}
	if got := panicError(42).Error(); got != "42" {
		t.Errorf("panicError(42) = %q", got)
	}
}

func TestShortFuncName(t *testing.T) {
	tests := map[string]string{
		"example.com/app/api.(*Users).Get": "api.(*Users).Get",
		"main.handler":                     "main.handler",
		"":                                 "",
	}
	for in, want := range tests {
		if got := shortFuncName(in); got != want {
			t.Errorf("shortFuncName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInvokeReturnsHandlerError(t *testing.T) {
	want := errors.New("returned")
	rec, err := invoke(HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) error {
		return want
	}), httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if rec != nil {
		t.Error("no panic expected")
	}
	if err != want {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestInvokeRecoversPanic(t *testing.T) {
	rec, err := invoke(HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) error {
		panic("kaboom")
	}), httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if rec == nil || rec.value != "kaboom" {
		t.Fatalf("expected recovered panic, got %+v", rec)
	}
	if len(rec.stack) == 0 {
		t.Error("expected stack")
	}
	if err == nil || err.Error() != "kaboom" {
		t.Errorf("err = %v", err)
	}
}
