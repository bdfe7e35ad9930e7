package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+91 98765-43210", "9876543210", "(022) 2345-6789", "+1 (555) 010 0000"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), phone)
	}

	invalid := []string{"abc123", "", "+", "98765 43210 ext. 4", "++91 98765", "9876543210#"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), phone)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail(""))
	assert.True(t, ValidateEmail("a@b.com"))
	assert.True(t, ValidateEmail("first.last@mail.example.in"))

	assert.False(t, ValidateEmail("abc"))
	assert.False(t, ValidateEmail("a@b"))
	assert.False(t, ValidateEmail("a b@c.com"))
	assert.False(t, ValidateEmail("a@@b.com"))
	assert.False(t, ValidateEmail("@b.com"))
}

type contactForm struct {
	Phone string `validate:"required,phone"`
	Email string `validate:"optemail"`
}

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Struct(contactForm{Phone: "+91 98765-43210"}))

	err := ToValidationError(v.Struct(contactForm{Phone: "abc123"}))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Phone", verr.Field)
	assert.Equal(t, "Invalid phone number", verr.Error())

	err = ToValidationError(v.Struct(contactForm{Phone: "12345", Email: "abc"}))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid email address", verr.Message)

	assert.NoError(t, ToValidationError(nil))
}
