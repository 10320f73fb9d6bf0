package scan

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorDisplay(t *testing.T) {
	e := JSONError(errors.New("unexpected end of JSON input"))
	if got := e.Error(); got != "JSON parsing error: unexpected end of JSON input" {
		t.Fatalf("display = %q", got)
	}
	s := SQLError(errors.New("first statement is not CREATE TABLE"))
	if got := s.Error(); got != "SQL parsing error: first statement is not CREATE TABLE" {
		t.Fatalf("display = %q", got)
	}
	g := Generic("File selection was canceled.")
	if got := g.Error(); got != "File selection was canceled." {
		t.Fatalf("display = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(IOError(errors.New("open: no such file"))) != KindIO {
		t.Error("io kind")
	}
	if KindOf(JSONError(errors.New("x"))) != KindJSON {
		t.Error("json kind")
	}
	if KindOf(SQLError(errors.New("x"))) != KindSQL {
		t.Error("sql kind")
	}
	if KindOf(errors.New("plain")) != KindGeneric {
		t.Error("untagged errors are generic")
	}
	// Kinds survive wrapping.
	wrapped := fmt.Errorf("scan failed: %w", SQLError(errors.New("x")))
	if KindOf(wrapped) != KindSQL {
		t.Error("kind must survive error wrapping")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	if !errors.Is(JSONError(inner), inner) {
		t.Error("Unwrap must expose the cause")
	}
}

