package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownTemplate, "unknown template %q", "hook-x")

	if err.Code != ErrCodeUnknownTemplate {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownTemplate)
	}

	if err.Message != `unknown template "hook-x"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `UNKNOWN_TEMPLATE: unknown template "hook-x"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "save layout")

	if err.Code != ErrCodeStore {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStore)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "STORE_ERROR: save layout: disk full" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeItemNotFound, "test"),
			code:     ErrCodeItemNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeItemNotFound, "test"),
			code:     ErrCodeStore,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeExportFailed, New(ErrCodeInternal, "inner"), "outer"),
			code:     ErrCodeExportFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnknownColor, "x")); got != ErrCodeUnknownColor {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUnknownColor)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestIsUnknownID(t *testing.T) {
	for _, code := range []Code{ErrCodeUnknownTemplate, ErrCodeUnknownBoardSize, ErrCodeUnknownColor, ErrCodeUnknownTexture, ErrCodeItemNotFound} {
		if !IsUnknownID(New(code, "x")) {
			t.Errorf("IsUnknownID(%s) = false", code)
		}
	}
	if IsUnknownID(New(ErrCodeStore, "x")) {
		t.Error("IsUnknownID(STORE_ERROR) = true")
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"hook-single", false},
		{"3f1c2a8e-4b7d-4c1e-9a55-0d2f6f3a9b10", false},
		{"", true},
		{"has space", true},
		{"tab\tid", true},
		{string(make([]byte, 129)), true},
	}
	for _, tt := range tests {
		err := ValidateID("template", tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateID(%q) code = %v", tt.id, GetCode(err))
		}
	}
}

func TestValidateStoreKey(t *testing.T) {
	valid := []string{"pegboard_layout_v5", "garage.main"}
	for _, k := range valid {
		if err := ValidateStoreKey(k); err != nil {
			t.Errorf("ValidateStoreKey(%q) = %v", k, err)
		}
	}
	invalid := []string{"", "../etc", "a/b", `a\b`}
	for _, k := range invalid {
		if err := ValidateStoreKey(k); err == nil {
			t.Errorf("ValidateStoreKey(%q) = nil, want error", k)
		}
	}
}
