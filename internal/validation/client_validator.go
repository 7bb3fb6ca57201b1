package validation

// ClientValidator provides validation for client write operations
type ClientValidator struct {
	validator *Validator
}

// NewClientValidator creates a new client validator
func NewClientValidator() *ClientValidator {
	return &ClientValidator{
		validator: NewValidator(),
	}
}

// ValidateClientName validates a client name for creation
func (cv *ClientValidator) ValidateClientName(name string) error {
	validationError := NewValidationError()

	trimmedName := cv.validator.TrimAndValidateString(name)

	if !cv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("client_name")
		return validationError
	}

	if !cv.validator.IsValidStringLength(trimmedName, nameMinLength, nameMaxLength) {
		validationError.AddInvalidLengthError("client_name", trimmedName, nameMinLength, nameMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateClientID validates a remote client record id
func (cv *ClientValidator) ValidateClientID(id string) error {
	if !cv.validator.IsValidRecordID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("client_id", id, "must be a remote record id")
		return validationError
	}
	return nil
}

// ValidateHexColor validates a status color value
func (cv *ClientValidator) ValidateHexColor(hex string) error {
	if !cv.validator.IsValidHexColor(hex) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("hex_color", hex, "six hex digits, with or without leading #")
		return validationError
	}
	return nil
}
