package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("streak for %q: %w", "Morning Movement", ErrStoreUnavailable),
			expected: `Error: streak for "Morning Movement": store unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("system %q not found", "Partner Wind-Down")
	want := `Error: system "Partner Wind-Down" not found`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	sentinels := []error{ErrMalformedDate, ErrStoreUnavailable, ErrNotAuthenticated, ErrNotFound, ErrSystemLimit}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", sentinel))
			if !Is(wrapped, sentinel) {
				t.Errorf("Is(%v, %v) = false, want true", wrapped, sentinel)
			}
			for _, other := range sentinels {
				if other != sentinel && Is(wrapped, other) {
					t.Errorf("Is(%v, %v) = true, want false", wrapped, other)
				}
			}
		})
	}
}
