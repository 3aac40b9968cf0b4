package apperrors

import "errors"

// Lookup errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrCourseNotFound  = errors.New("course not found")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled    = errors.New("student already enrolled in this course")
	ErrSectionNotFound    = errors.New("course section not found")
	ErrNoAvailableSection = errors.New("no section with available spots")
	ErrCourseFull         = errors.New("course section is full")
	ErrNotEnrolled        = errors.New("student is not enrolled in this course")
)

// Persistence errors
var (
	// ErrPersistenceFailure marks a save failure after an in-memory mutation.
	// The in-memory and on-disk collections may disagree until the next
	// successful save, so callers must surface it distinctly from the
	// logical failures above.
	ErrPersistenceFailure = errors.New("failed to persist data")
)

// Account errors
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrIdentifierTaken      = errors.New("identifier already taken")
	ErrSectionAlreadyExists = errors.New("course section already exists")
	ErrSessionInvalid       = errors.New("invalid or expired session")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
)

// CustomError carries extra context around a sentinel error.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError wraps a sentinel with a contextual message.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails attaches structured context to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Is reports whether err matches target or any error in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
