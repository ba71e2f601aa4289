// Package errors defines the engine's typed error kinds.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the engine.
const (
	CodeUnknown         = "UNKNOWN_ERROR"
	CodeIO              = "IO_ERROR"
	CodeBadGFA          = "BAD_GFA"
	CodeUnknownNode     = "UNKNOWN_NODE"
	CodeUnknownEdge     = "UNKNOWN_EDGE"
	CodeBadMask         = "BAD_MASK"
	CodeBadThreshold    = "BAD_THRESHOLD"
	CodeEmptyGraph      = "EMPTY_GRAPH"
	CodeNumericOverflow = "NUMERIC_OVERFLOW"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances, one per spec error kind.
var (
	ErrIO              = New(CodeIO, "i/o error")
	ErrBadGFA          = New(CodeBadGFA, "malformed GFA input")
	ErrUnknownNode     = New(CodeUnknownNode, "reference to unknown node")
	ErrUnknownEdge     = New(CodeUnknownEdge, "reference to unknown edge")
	ErrBadMask         = New(CodeBadMask, "malformed subset/exclude mask")
	ErrBadThreshold    = New(CodeBadThreshold, "malformed coverage/quorum threshold")
	ErrEmptyGraph      = New(CodeEmptyGraph, "graph has no countable items")
	ErrNumericOverflow = New(CodeNumericOverflow, "numeric overflow")
)

// IsIOError checks if the error is an i/o error.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsBadGFA checks if the error is a malformed-GFA error.
func IsBadGFA(err error) bool {
	return errors.Is(err, ErrBadGFA)
}

// IsUnknownNode checks if the error refers to an unknown node.
func IsUnknownNode(err error) bool {
	return errors.Is(err, ErrUnknownNode)
}

// IsUnknownEdge checks if the error refers to an unknown edge.
func IsUnknownEdge(err error) bool {
	return errors.Is(err, ErrUnknownEdge)
}

// IsEmptyGraph reports whether err is (or wraps) the empty-graph
// condition, which callers treat as a warning rather than a failed run.
func IsEmptyGraph(err error) bool {
	return errors.Is(err, ErrEmptyGraph)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Fatal reports whether an error should abort the run with a non-zero
// exit code, as opposed to being logged as a WARN and continuing with
// an empty result (the empty-graph case, per spec error handling §7).
func Fatal(err error) bool {
	return err != nil && !IsEmptyGraph(err)
}

// ErrorInfo maps error kind names onto their codes.
var ErrorInfo = map[string]string{
	"Io":              CodeIO,
	"BadGfa":          CodeBadGFA,
	"UnknownNode":     CodeUnknownNode,
	"UnknownEdge":     CodeUnknownEdge,
	"BadMask":         CodeBadMask,
	"BadThreshold":    CodeBadThreshold,
	"EmptyGraph":      CodeEmptyGraph,
	"NumericOverflow": CodeNumericOverflow,
}
