package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidData, "max magnitude is %d", 0)

	if err.Code != ErrCodeInvalidData {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidData)
	}
	if err.Message != "max magnitude is 0" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "INVALID_DATA: max magnitude is 0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("unexpected token")
	err := Wrap(ErrCodeInvalidChartFile, cause, "parse chart.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "INVALID_CHART_FILE: parse chart.toml: unexpected token"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeMissingData, "no values field")

	if !Is(err, ErrCodeMissingData) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInvalidData) {
		t.Error("Is() should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeMissingData) {
		t.Error("Is() should not match plain errors")
	}

	// Code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("pipeline: %w", err)
	if !Is(wrapped, ErrCodeMissingData) {
		t.Error("Is() should unwrap fmt-wrapped errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDimensionMismatch, "ragged rows")); got != ErrCodeDimensionMismatch {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidOrientation, "unknown orientation \"diagonal\"")
	if got := UserMessage(err); got != "unknown orientation \"diagonal\"" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
