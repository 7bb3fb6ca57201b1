package validation

import (
	"testing"
)

func TestIsValidRecordID(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		id   string
		want bool
	}{
		{"recA1b2C3d4E5f6G7", true},
		{"rec000001", true},
		{"rec", false},
		{"tblA1b2C3d4E5f6G7", false},
		{"", false},
		{"rec with spaces", false},
	}

	for _, tt := range tests {
		if got := v.IsValidRecordID(tt.id); got != tt.want {
			t.Errorf("IsValidRecordID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestIsValidDueDate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		date string
		want bool
	}{
		{"2024-06-15", true},
		{"2024-13-01", false},
		{"15/06/2024", false},
		{"not a date", false},
	}

	for _, tt := range tests {
		if got := v.IsValidDueDate(tt.date); got != tt.want {
			t.Errorf("IsValidDueDate(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestIsValidHexColor(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		hex  string
		want bool
	}{
		{"#D5C8F6", true},
		{"D5C8F6", true},
		{"#d5c8f6", true},
		{"#D5C8", false},
		{"#GGGGGG", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := v.IsValidHexColor(tt.hex); got != tt.want {
			t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestValidateTaskName(t *testing.T) {
	tv := NewTaskValidator()

	if err := tv.ValidateTaskName("Prepare QBR deck"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}

	err := tv.ValidateTaskName("   ")
	if err == nil {
		t.Fatal("empty name accepted")
	}
	if !IsValidationError(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestValidateTaskForCreationCollectsAllErrors(t *testing.T) {
	tv := NewTaskValidator()

	err := tv.ValidateTaskForCreation("", "June 15th")
	if err == nil {
		t.Fatal("invalid task accepted")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.GetFieldErrors("task_name")) == 0 {
		t.Error("missing task_name error")
	}
	if len(ve.GetFieldErrors("due_date")) == 0 {
		t.Error("missing due_date error")
	}
}

func TestGetValidTaskNameTrims(t *testing.T) {
	tv := NewTaskValidator()

	name, err := tv.GetValidTaskName("  Kickoff call  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Kickoff call" {
		t.Errorf("got %q, want %q", name, "Kickoff call")
	}
}

func TestValidateClientName(t *testing.T) {
	cv := NewClientValidator()

	if err := cv.ValidateClientName("Acme"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := cv.ValidateClientName(""); err == nil {
		t.Error("empty name accepted")
	}
}

func TestValidationErrorMessages(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("task_name")
	ve.AddInvalidFormatError("due_date", "June", "2006-01-02")

	if !ve.HasErrors() {
		t.Fatal("expected errors")
	}
	msg := ve.GetUserFriendlyMessage()
	if msg == "" {
		t.Error("empty user message")
	}
}
