package utils

import (
	"strings"
)

// ValidationError carries a message plus the individual field errors
// that produced it. Controllers map it to a 422 response.
type ValidationError struct {
	Msg  string
	Errs []string
}

func (e *ValidationError) Error() string {
	if len(e.Errs) == 0 {
		return e.Msg
	}
	return e.Msg + ": " + strings.Join(e.Errs, ", ")
}

func NewValidationError(msg string, errs []string) error {
	return &ValidationError{
		Msg:  msg,
		Errs: errs,
	}
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ValidateEmail applies the same loose shape check the audit intake
// form uses: a non-empty address must contain both '@' and '.'.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return NewValidationError("Invalid email format", []string{email})
	}
	return nil
}

// SanitizeString trims surrounding whitespace and escapes HTML special
// characters in user-supplied free text.
func SanitizeString(input string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(input))
}
