package diagnostics

import (
	"errors"
	"strings"
	"testing"
)

func TestNewFormatsAgainstCodeTemplate(t *testing.T) {
	err := New(ModuleNotFound, Span{}, "foo.bar")
	want := `module "foo.bar" not found`
	if err.Message != want {
		t.Fatalf("Message = %q, want %q", err.Message, want)
	}
}

func TestErrorStringOmitsLocationForUnknownSpan(t *testing.T) {
	err := New(InvalidConfig, Span{}, "bad")
	if err.Error() != err.Message {
		t.Fatalf("Error() with empty span should not carry a location: %q", err.Error())
	}
}

func TestErrorStringIncludesLocationWhenSpanKnown(t *testing.T) {
	err := New(TypeMismatch, Span{File: "a.kailua", Line: 3, Col: 1}, "integer", "subtype", "string")
	got := err.Error()
	if !strings.HasPrefix(got, "a.kailua:3:1: ") {
		t.Fatalf("Error() = %q, want location prefix", got)
	}
}

func TestWrapProducesIoErrorDiagnostic(t *testing.T) {
	inner := errors.New("permission denied")
	err := Wrap(Span{File: "x"}, inner)
	if err.Code != IoError {
		t.Fatalf("Wrap code = %v, want IoError", err.Code)
	}
	if !strings.Contains(err.Message, "permission denied") {
		t.Fatalf("Wrap message %q should contain underlying error text", err.Message)
	}
}

func TestNewFallsBackForUnknownCode(t *testing.T) {
	err := New(Code(999), Span{})
	if err.Message != "unknown diagnostic" {
		t.Fatalf("Message = %q, want fallback text", err.Message)
	}
}
