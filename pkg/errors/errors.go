// Copyright (c) 2025, Jobscope Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeBinaryNotFound indicates the monitoring agent binary could not
	// be resolved on PATH. Fatal before any launch side effects.
	ErrCodeBinaryNotFound ErrorCode = "BINARY_NOT_FOUND"
	// ErrCodeSpawnFailed indicates an agent process failed to start or died
	// immediately after starting.
	ErrCodeSpawnFailed ErrorCode = "SPAWN_FAILED"
	// ErrCodeSchedulerQuery indicates an external scheduler CLI command
	// itself failed. Fatal during job-state polling; tolerated during
	// resource discovery where it degrades to "unknown".
	ErrCodeSchedulerQuery ErrorCode = "SCHEDULER_QUERY_FAILED"
	// ErrCodeJobNotFound indicates the scheduler no longer knows the job.
	ErrCodeJobNotFound ErrorCode = "JOB_NOT_FOUND"
	// ErrCodeJobTerminal indicates the job reached a terminal state before
	// a worker could attach. Never retried.
	ErrCodeJobTerminal ErrorCode = "JOB_TERMINAL"
	// ErrCodeSnapshotParse indicates a single snapshot file could not be
	// read or decoded. Recoverable; the file is skipped.
	ErrCodeSnapshotParse ErrorCode = "SNAPSHOT_PARSE"
	// ErrCodeTeardownTimeout indicates graceful stop exceeded its grace
	// period and teardown escalated to force-kill.
	ErrCodeTeardownTimeout ErrorCode = "TEARDOWN_TIMEOUT"
	// ErrCodeZombieCleanup indicates stale step cleanup failed. Logged only.
	ErrCodeZombieCleanup ErrorCode = "ZOMBIE_CLEANUP_FAILED"

	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not allowed for the resource.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeUnavailable indicates a service or resource is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the ErrorCode carried by err, unwrapping as needed.
// Errors without a StructuredError in their chain report ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
