package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeBadGFA, "missing header line"),
			expected: "[BAD_GFA] missing header line",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeIO, "read failed", errors.New("disk error")),
			expected: "[IO_ERROR] read failed: disk error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeBadGFA, "parse failed", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeUnknownNode, "error 1")
	err2 := New(CodeUnknownNode, "error 2")
	err3 := New(CodeUnknownEdge, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsEmptyGraph(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"empty graph error", ErrEmptyGraph, true},
		{"wrapped empty graph error", Wrap(CodeEmptyGraph, "no countables", nil), true},
		{"other error", ErrBadGFA, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEmptyGraph(tt.err))
		})
	}
}

func TestIsUnknownNode(t *testing.T) {
	assert.True(t, IsUnknownNode(ErrUnknownNode))
	assert.False(t, IsUnknownNode(ErrUnknownEdge))
}

func TestIsUnknownEdge(t *testing.T) {
	assert.True(t, IsUnknownEdge(ErrUnknownEdge))
	assert.False(t, IsUnknownEdge(ErrUnknownNode))
}

func TestIsBadGFA(t *testing.T) {
	assert.True(t, IsBadGFA(ErrBadGFA))
	assert.False(t, IsBadGFA(ErrIO))
}

func TestIsIOError(t *testing.T) {
	assert.True(t, IsIOError(ErrIO))
	assert.False(t, IsIOError(ErrBadGFA))
}

func TestFatal(t *testing.T) {
	assert.True(t, Fatal(ErrBadGFA))
	assert.True(t, Fatal(ErrUnknownNode))
	assert.False(t, Fatal(ErrEmptyGraph))
	assert.False(t, Fatal(nil))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeBadThreshold, "bad threshold"),
			expected: CodeBadThreshold,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeUnknownEdge, "edge", errors.New("inner")),
			expected: CodeUnknownEdge,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeBadMask, "bad mask file"),
			expected: "bad mask file",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}

func TestErrorInfo(t *testing.T) {
	assert.Equal(t, CodeBadGFA, ErrorInfo["BadGfa"])
	assert.Equal(t, CodeUnknownNode, ErrorInfo["UnknownNode"])
	assert.Equal(t, CodeUnknownEdge, ErrorInfo["UnknownEdge"])
	assert.Equal(t, CodeEmptyGraph, ErrorInfo["EmptyGraph"])
	assert.Equal(t, CodeBadThreshold, ErrorInfo["BadThreshold"])
}
