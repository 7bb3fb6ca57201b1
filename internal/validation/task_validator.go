package validation

// TaskValidator provides validation for task write operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTaskName validates a task name for creation or update
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("task_name")
		return validationError
	}

	if !tv.validator.IsValidStringLength(trimmedName, nameMinLength, nameMaxLength) {
		validationError.AddInvalidLengthError("task_name", trimmedName, nameMinLength, nameMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateDueDate validates an optional due date string. Empty means no
// due date and is always valid.
func (tv *TaskValidator) ValidateDueDate(date string) error {
	if date == "" {
		return nil
	}
	if !tv.validator.IsValidDueDate(date) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("due_date", date, "2006-01-02")
		return validationError
	}
	return nil
}

// ValidateTaskForCreation validates the fields of a new task
func (tv *TaskValidator) ValidateTaskForCreation(name, dueDate string) error {
	validationError := NewValidationError()

	if nameErr := tv.ValidateTaskName(name); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}
	if dateErr := tv.ValidateDueDate(dueDate); dateErr != nil {
		if dateValidationErr, ok := dateErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, dateValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTaskID validates a remote task record id
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsValidRecordID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a remote record id")
		return validationError
	}
	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}
