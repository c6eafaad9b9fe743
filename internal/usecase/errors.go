package usecase

import "errors"

var (
	ErrWizardBusy        = errors.New("wizard is busy with another operation")
	ErrWizardFinished    = errors.New("wizard already created its interview")
	ErrStepOutOfOrder    = errors.New("interview can only be created from the final step")
	ErrSessionNotFound   = errors.New("wizard session not found")
	ErrUploadFailed      = errors.New("upload failed")
	ErrInterviewNotFound = errors.New("interview not found")
	ErrNoReport          = errors.New("no report data found")
	ErrInvalidReport     = errors.New("invalid report format")
	ErrNoResume          = errors.New("interview has no resume")
	ErrUnauthenticated   = errors.New("you must be logged in")
)

// ValidationError blocks an action before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
