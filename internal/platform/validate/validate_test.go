// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturdaylabs/saturday/internal/platform/apperr"
	"github.com/saturdaylabs/saturday/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Saturday", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Length checks MinLen and MaxLen, counting Unicode characters
rather than bytes.
*/
func TestValidator_Length(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		min      int
		max      int
		hasError bool
	}{
		{"within_bounds", "password1", 8, 128, false},
		{"too_short", "short", 8, 128, true},
		{"too_long", "aaaaaaaaaaaa", 1, 10, true},
		{"unicode_counted_as_runes", "héllo wörld", 8, 128, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.MinLen("field", tt.value, tt.min).MaxLen("field", tt.value, tt.max)

			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Custom checks the escape-hatch rule and error accumulation
across a chain.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.
		Required("email", "").
		Custom("message", true, "Message too long")

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 2)
	assert.Equal(t, "message", ae.Details[1].Field)
	assert.Equal(t, "Message too long", ae.Details[1].Message)
}
