package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// EmailPattern is a deliberately loose email check.
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// UserIDPattern matches identifiers such as STU001, TCH012, ADM001.
	UserIDPattern = `^[A-Z]{3}\d{3,}$`

	// CourseIDPattern matches course identifiers such as CS101, MATH102.
	CourseIDPattern = `^[A-Z]{2,6}\d{3}$`

	// SectionPattern matches a single-letter section disambiguator.
	SectionPattern = `^[A-Z]$`

	PasswordMinLength = 6
	NameMinLength     = 2
	NameMaxLength     = 100
)

// CompiledPatterns caches the compiled patterns.
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	UserID   *regexp.Regexp
	CourseID *regexp.Regexp
	Section  *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	UserID:   regexp.MustCompile(UserIDPattern),
	CourseID: regexp.MustCompile(CourseIDPattern),
	Section:  regexp.MustCompile(SectionPattern),
}

// IsValidEmail reports whether email looks like an email address.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidUserID reports whether id matches the portal identifier format.
func IsValidUserID(id string) bool {
	return CompiledPatterns.UserID.MatchString(id)
}

// IsValidCourseID reports whether id matches the course identifier format.
func IsValidCourseID(id string) bool {
	return CompiledPatterns.CourseID.MatchString(id)
}

// IsValidSection reports whether section is a valid section letter.
func IsValidSection(section string) bool {
	return CompiledPatterns.Section.MatchString(section)
}

// IsValidPassword enforces the minimum password length.
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// IsValidName enforces name length bounds after trimming.
func IsValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= NameMinLength && len(trimmed) <= NameMaxLength
}
