package app

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"nil", nil, ""},
		{"component only", &Error{Component: "journal"}, "journal"},
		{"with op", &Error{Component: "keymap", Op: "reload"}, "keymap: reload"},
		{"full", NewError("keymap", "save", errors.New("disk full")), "keymap: save: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestError_Severity(t *testing.T) {
	base := errors.New("boom")
	warn := NewError("script", "load", base)
	if IsFatal(warn) {
		t.Error("NewError should produce a warning")
	}

	fatal := warn.Fatal()
	if !IsFatal(fatal) {
		t.Error("Fatal() should mark the error fatal")
	}
	if warn.Severity != SeverityWarning {
		t.Error("Fatal() must not modify the receiver")
	}
	if !IsFatal(fmt.Errorf("run: %w", fatal)) {
		t.Error("IsFatal should see through wrapping")
	}
	if !errors.Is(fatal, base) {
		t.Error("Error should unwrap to its cause")
	}
	if IsFatal(base) {
		t.Error("plain errors are not fatal")
	}
	if SeverityFatal.String() != "fatal" || SeverityWarning.String() != "warning" {
		t.Error("unexpected severity names")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "bad"}
	if err.Error() != "panic: bad" {
		t.Errorf("Error() = %q", err.Error())
	}
	err.Stack = "goroutine 1"
	if !strings.HasSuffix(err.Error(), "\ngoroutine 1") {
		t.Errorf("stack missing: %q", err.Error())
	}
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	if list.AsError() != nil {
		t.Fatal("empty list should be nil error")
	}

	first := errors.New("first")
	list.Add(nil)
	list.Add(first)
	if list.Len() != 1 || list.Error() != "first" {
		t.Errorf("single error list: len=%d msg=%q", list.Len(), list.Error())
	}

	list.Add(ErrInitialization)
	if list.Error() != "2 errors: first: first" {
		t.Errorf("Error() = %q", list.Error())
	}
	if !errors.Is(list.AsError(), ErrInitialization) {
		t.Error("errors.Is should find wrapped sentinel")
	}
	if len(list.Errors()) != 2 {
		t.Error("Errors() should return both")
	}
}
