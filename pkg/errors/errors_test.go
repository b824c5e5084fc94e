package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeMalformedSize, "room: size %q is not WxH", "70x")
	if got, want := err.Error(), `MALFORMED_SIZE: room: size "70x" is not WxH`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("strconv.ParseFloat: invalid syntax")
	wrapped := Wrap(ErrCodeMalformedSize, cause, "table")
	if got, want := wrapped.Error(), "MALFORMED_SIZE: table: strconv.ParseFloat: invalid syntax"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if errors.Unwrap(wrapped) != cause || !errors.Is(wrapped, cause) {
		t.Error("Wrap() does not expose its cause")
	}
}

func TestCodeThroughStageWrapping(t *testing.T) {
	// Outer layers add context with fmt.Errorf; the code must survive.
	inner := New(ErrCodePacking, "room too small or fully blocked")
	err := fmt.Errorf("layout: %w", fmt.Errorf("compute: %w", inner))

	if !Is(err, ErrCodePacking) {
		t.Errorf("Is(%v, PACKING_ERROR) = false", err)
	}
	if got := GetCode(err); got != ErrCodePacking {
		t.Errorf("GetCode() = %q, want PACKING_ERROR", got)
	}
	if got := UserMessage(err); got != "room too small or fully blocked" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"same code", New(ErrCodeValidation, "row 7 out of range"), ErrCodeValidation, true},
		{"other code", New(ErrCodeValidation, "row 7 out of range"), ErrCodePacking, false},
		{"outermost code wins", Wrap(ErrCodeInternal, New(ErrCodeMalformedSize, "x"), "render"), ErrCodeInternal, true},
		{"inner code hidden", Wrap(ErrCodeInternal, New(ErrCodeMalformedSize, "x"), "render"), ErrCodeMalformedSize, false},
		{"plain error", errors.New("boom"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
	if got := UserMessage(errors.New("disk full")); got != "disk full" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if got := UserMessage(New(ErrCodeDesignExpired, "design abc has expired")); got != "design abc has expired" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeMalformedSize, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidUnit, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeInvalidStyle, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodePacking, http.StatusUnprocessableEntity},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDesignNotFound, http.StatusNotFound},
		{ErrCodeDesignExpired, http.StatusGone},
		{ErrCodeUnsupported, http.StatusNotImplemented},
		{ErrCodeInvalidOrientation, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.want {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}
