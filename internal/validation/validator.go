package validation

import (
	"regexp"
	"strings"
)

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// PasswordStrength returns a human-readable problem with the password, or
// an empty string when it passes all rules.
func (v *Validator) PasswordStrength(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if !upperPattern.MatchString(password) {
		return "Password must contain at least one uppercase letter"
	}
	if !lowerPattern.MatchString(password) {
		return "Password must contain at least one lowercase letter"
	}
	if !digitPattern.MatchString(password) {
		return "Password must contain at least one number"
	}
	if !specialPattern.MatchString(password) {
		return "Password must contain at least one special character"
	}
	return ""
}

// ValidEmail reports whether the address looks like an email.
func (v *Validator) ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidateGenerateRequest checks subject/unit identifiers for a generation
// call. Difficulty is not validated here: unrecognized values fall back to
// the medium target count downstream.
func (v *Validator) ValidateGenerateRequest(subjectID, unitID int64) string {
	if subjectID <= 0 {
		return "subject_id is required"
	}
	if unitID <= 0 {
		return "unit_id is required"
	}
	return ""
}
