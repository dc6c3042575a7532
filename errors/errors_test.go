package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func TestValidation_Messages(t *testing.T) {
	err := Validation("Field 1 had an error.")
	if len(err.Messages) != 1 || err.Messages[0] != "Field 1 had an error." {
		t.Errorf("unexpected messages: %v", err.Messages)
	}
	if err.HTTPStatus() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus())
	}
	if err.Code() != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code())
	}
}

func TestValidation_EmptyUsesSummary(t *testing.T) {
	err := Validation()
	if len(err.Messages) != 1 || err.Messages[0] != ValidationSummary {
		t.Errorf("expected summary as the only message, got %v", err.Messages)
	}
}

func TestValidation_CopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	err := Validation(in...)
	in[0] = "changed"
	if err.Messages[0] != "a" {
		t.Error("Validation should not alias the caller's slice")
	}
}

func TestValidationFromFields_Order(t *testing.T) {
	err := ValidationFromFields([]FieldMessages{
		{Field: "name", Messages: []string{"name is required", "name is too short"}},
		{Field: "email", Messages: []string{"email is invalid"}},
		{Field: "age"},
	})
	want := []string{"name is required", "name is too short", "email is invalid"}
	if !reflect.DeepEqual(err.Messages, want) {
		t.Errorf("expected %v, got %v", want, err.Messages)
	}
}

func TestValidationFromMap_SortedKeys(t *testing.T) {
	err := ValidationFromMap(map[string][]string{
		"zeta":  {"z1"},
		"alpha": {"a1", "a2"},
	})
	want := []string{"a1", "a2", "z1"}
	if !reflect.DeepEqual(err.Messages, want) {
		t.Errorf("expected %v, got %v", want, err.Messages)
	}
}

func TestNotFound_Detail(t *testing.T) {
	err := NotFound("SomeResource", "123")
	if err.HTTPStatus() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus())
	}
	if got := err.Detail(); got != "SomeResource: 123 not found." {
		t.Errorf("unexpected detail %q", got)
	}
	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("expected error string to contain code, got %q", err.Error())
	}
}

func TestFormatResourceError_IntID(t *testing.T) {
	err := FormatResourceError("user", 42)
	if err.ID != "42" || err.Resource != "user" {
		t.Errorf("unexpected fields: %+v", err)
	}
}

func TestUnclassified_Cause(t *testing.T) {
	cause := fmt.Errorf("db connection lost")
	err := Unclassified(cause)
	if err.Message != "db connection lost" {
		t.Errorf("expected cause message, got %q", err.Message)
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should see the cause")
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus())
	}
}

func TestUnclassifiedf(t *testing.T) {
	err := Unclassifiedf("job %d failed", 7)
	if err.Message != "job 7 failed" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestWithSource(t *testing.T) {
	if got := NotFound("a", "1").WithSource("repo").Source(); got != "repo" {
		t.Errorf("expected repo, got %q", got)
	}
	if got := Validation("x").WithSource("handler").Source(); got != "handler" {
		t.Errorf("expected handler, got %q", got)
	}
	if got := Unclassifiedf("boom").Source(); got != "" {
		t.Errorf("expected empty source, got %q", got)
	}
}

func TestKind_Table(t *testing.T) {
	tests := []struct {
		kind   Kind
		name   string
		code   ErrorCode
		status int
	}{
		{KindValidation, "validation", ErrCodeInvalidInput, http.StatusBadRequest},
		{KindNotFound, "not_found", ErrCodeNotFound, http.StatusNotFound},
		{KindUnclassified, "unclassified", ErrCodeInternal, http.StatusInternalServerError},
		{Kind(99), "unclassified", ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.kind.String() != tc.name {
				t.Errorf("expected %s, got %s", tc.name, tc.kind)
			}
			if CodeOf(tc.kind) != tc.code {
				t.Errorf("expected %s, got %s", tc.code, CodeOf(tc.kind))
			}
			if StatusOf(tc.kind) != tc.status {
				t.Errorf("expected %d, got %d", tc.status, StatusOf(tc.kind))
			}
		})
	}
}
