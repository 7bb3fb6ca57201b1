package validation

import (
	"regexp"
	"strings"
	"time"
)

const (
	nameMinLength = 1
	nameMaxLength = 255

	dueDateLayout = "2006-01-02"
)

var (
	recordIDPattern = regexp.MustCompile(`^rec[a-zA-Z0-9]{5,}$`)
	hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidRecordID checks if a string looks like a remote record id
func (v *Validator) IsValidRecordID(id string) bool {
	return recordIDPattern.MatchString(id)
}

// IsValidDueDate checks if a string parses as a calendar date (2006-01-02)
func (v *Validator) IsValidDueDate(s string) bool {
	_, err := time.ParseInLocation(dueDateLayout, s, time.Local)
	return err == nil
}

// IsValidHexColor checks if a string is a six-digit hex color, with or
// without the leading "#"
func (v *Validator) IsValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
