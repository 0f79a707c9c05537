package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qms-server/internal/utils"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, utils.ValidateEmail("anna.braun@example.com"))
	assert.NoError(t, utils.ValidateEmail(""), "empty address is treated as not provided")
	assert.NoError(t, utils.ValidateEmail("   "))

	assert.Error(t, utils.ValidateEmail("not-an-email"))
	assert.Error(t, utils.ValidateEmail("missing-dot@example"))
	assert.Error(t, utils.ValidateEmail("missing.at.example.com"))
}

func TestValidationError(t *testing.T) {
	err := utils.NewValidationError("audit validation failed", []string{"audit_title is required", "lead_auditor is required"})

	assert.True(t, utils.IsValidationError(err))
	assert.Equal(t, "audit validation failed: audit_title is required, lead_auditor is required", err.Error())

	bare := utils.NewValidationError("bad input", nil)
	assert.Equal(t, "bad input", bare.Error())

	assert.False(t, utils.IsValidationError(assert.AnError))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", utils.SanitizeString("  hello  "))
	assert.Equal(t, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", utils.SanitizeString("<script>alert('x')</script>"))
	assert.Equal(t, "a &amp; b", utils.SanitizeString("a & b"))
}
