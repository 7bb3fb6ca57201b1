package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("tasks table", "TB_AIRTABLE_TASKS_TABLE_ID")

	if err.Type != ErrorTypeConfiguration {
		t.Errorf("NewConfigurationError type = %v, want %v", err.Type, ErrorTypeConfiguration)
	}
	if err.Code != "NOT_CONFIGURED" {
		t.Errorf("NewConfigurationError code = %v, want %v", err.Code, "NOT_CONFIGURED")
	}
	if err.Message != "tasks table is not configured: TB_AIRTABLE_TASKS_TABLE_ID is missing" {
		t.Errorf("NewConfigurationError message = %v", err.Message)
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "tasks table" {
		t.Errorf("NewConfigurationError should set resource context")
	}
}

func TestNewRemoteError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewRemoteError("list tasks", cause)

	if err.Type != ErrorTypeRemote {
		t.Errorf("NewRemoteError type = %v, want %v", err.Type, ErrorTypeRemote)
	}
	if err.Code != "REMOTE_ERROR" {
		t.Errorf("NewRemoteError code = %v, want %v", err.Code, "REMOTE_ERROR")
	}
	if err.Cause != cause {
		t.Errorf("NewRemoteError cause = %v, want %v", err.Cause, cause)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewRemoteError should unwrap to its cause")
	}
}

func TestNewRemoteStatusError(t *testing.T) {
	err := NewRemoteStatusError("update task", 422, `{"error":"INVALID_VALUE"}`)

	if err.Type != ErrorTypeRemote {
		t.Errorf("NewRemoteStatusError type = %v, want %v", err.Type, ErrorTypeRemote)
	}
	if StatusCode(err) != 422 {
		t.Errorf("StatusCode = %v, want 422", StatusCode(err))
	}
}

func TestStatusCodeOnNonRemoteError(t *testing.T) {
	if StatusCode(errors.New("plain")) != 0 {
		t.Errorf("StatusCode on plain error should be 0")
	}
	if StatusCode(NewNotFoundError("task", "rec123")) != 0 {
		t.Errorf("StatusCode on not found error should be 0")
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "rec123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: rec123" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "rec123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewPartialBatchError(t *testing.T) {
	cause := errors.New("timeout")
	err := NewPartialBatchError("owner", "recOwner1", cause)

	if err.Type != ErrorTypePartialBatch {
		t.Errorf("NewPartialBatchError type = %v, want %v", err.Type, ErrorTypePartialBatch)
	}
	if err.Cause != cause {
		t.Errorf("NewPartialBatchError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewRemoteError("fetch", errors.New("boom"))

	if !IsErrorType(err, ErrorTypeRemote) {
		t.Errorf("IsErrorType should match remote errors")
	}
	if IsErrorType(err, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should not match other types")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsErrorType(wrapped, ErrorTypeRemote) {
		t.Errorf("IsErrorType should match through wrapping")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"configuration errors are logged", NewConfigurationError("clients table", "TB_AIRTABLE_CLIENTS_TABLE_ID"), true},
		{"remote errors are logged", NewRemoteError("list clients", errors.New("boom")), true},
		{"partial batch errors are logged", NewPartialBatchError("owner", "rec1", errors.New("boom")), true},
		{"not found errors are not logged", NewNotFoundError("task", "rec1"), false},
		{"validation errors are not logged", NewValidationError("name required", nil), false},
		{"unknown errors are logged", errors.New("mystery"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.want {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetUserMessage(t *testing.T) {
	remoteErr := NewRemoteError("update client", errors.New("boom"))
	if GetUserMessage(remoteErr) != "The remote store could not be reached. The change was not saved." {
		t.Errorf("GetUserMessage for remote error = %v", GetUserMessage(remoteErr))
	}

	nfErr := NewNotFoundError("client", "recX")
	if GetUserMessage(nfErr) != "client not found: recX" {
		t.Errorf("GetUserMessage for not found error = %v", GetUserMessage(nfErr))
	}

	plain := errors.New("plain failure")
	if GetUserMessage(plain) != "plain failure" {
		t.Errorf("GetUserMessage for plain error = %v", GetUserMessage(plain))
	}
}
