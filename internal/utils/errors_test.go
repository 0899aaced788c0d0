package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpError_Error(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		cause    error
		expected string
	}{
		{
			name:     "simple error",
			context:  "reading file header",
			cause:    errors.New("unexpected EOF"),
			expected: "reading file header: unexpected EOF",
		},
		{
			name:     "nested error",
			context:  "scanning frame 12",
			cause:    errors.New("seek failed"),
			expected: "scanning frame 12: seek failed",
		},
		{
			name:     "empty context",
			context:  "",
			cause:    errors.New("some error"),
			expected: ": some error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &OpError{
				Context: tt.context,
				Cause:   tt.cause,
			}
			require.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		context string
		cause   error
		wantNil bool
	}{
		{
			name:    "wrap non-nil error",
			context: "reading payload",
			cause:   errors.New("IO error"),
			wantNil: false,
		},
		{
			name:    "wrap nil error returns nil",
			context: "some operation",
			cause:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(tt.context, tt.cause)

			if tt.wantNil {
				require.Nil(t, err)
				return
			}

			require.NotNil(t, err)

			var op *OpError
			ok := errors.As(err, &op)
			require.True(t, ok, "error should be OpError type")
			require.Equal(t, tt.context, op.Context)
			require.Equal(t, tt.cause, op.Cause)
		})
	}
}

func TestOpError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrapped := WrapError("context", originalErr)

	require.NotNil(t, wrapped)
	require.Equal(t, originalErr, errors.Unwrap(wrapped))
}

func TestOpError_ErrorsIs(t *testing.T) {
	originalErr := errors.New("specific error")
	wrapped := WrapError("first level", originalErr)
	doubleWrapped := WrapError("second level", wrapped)

	// errors.Is should work through the chain.
	require.True(t, errors.Is(doubleWrapped, originalErr))
	require.True(t, errors.Is(wrapped, originalErr))
}

func TestWrapError_ChainedWrapping(t *testing.T) {
	baseErr := errors.New("base error")
	level1 := WrapError("seek to frame", baseErr)
	level2 := WrapError("scan headers", level1)

	require.True(t, errors.Is(level2, baseErr))
	require.Equal(t, "scan headers: seek to frame: base error", level2.Error())
}
