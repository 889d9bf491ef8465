package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("NV-TEST-1000", "test message"),
			expected: "test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("NV-TEST-1001", "test message").WithDetails("offset %d", 12),
			expected: "test message: offset 12",
		},
		{
			name:     "error with details and cause",
			err:      NewDomainError("NV-TEST-1002", "test message").WithDetails("user_a").WithCause(fmt.Errorf("disk gone")),
			expected: "test message: user_a: disk gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := ErrCorruptData.WithDetails("offset 0")
	err2 := ErrCorruptData.WithDetails("offset 7")

	assert.ErrorIs(t, err1, err2, "same code matches")
	assert.ErrorIs(t, err1, ErrCorruptData, "sentinel matches")
	assert.NotErrorIs(t, err1, ErrIO, "different code")
	assert.NotErrorIs(t, err1, fmt.Errorf("some error"))
}

func TestDomainError_CopiesLeaveSentinelAlone(t *testing.T) {
	_ = ErrIO.WithDetails("user_a: write").WithCause(errors.New("EIO"))
	assert.Empty(t, ErrIO.Details)
	assert.Nil(t, ErrIO.Cause)
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrIO.WithCause(cause)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("format: commit: %w", err)
	assert.ErrorIs(t, wrapped, ErrIO)
	assert.Equal(t, ErrIO.Code, GetErrorCode(wrapped))
	assert.Empty(t, GetErrorCode(cause))
	assert.Empty(t, GetErrorCode(nil))
}
