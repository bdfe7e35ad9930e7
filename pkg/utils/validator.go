package utils

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^[+]?[\d\s\-()]+$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationError is a client-side input rejection. It never reaches the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserMessage is the text shown to the dashboard user
func (e *ValidationError) UserMessage() string {
	return e.Message
}

// ValidatePhone accepts an optional leading '+' followed by digits, spaces,
// hyphens and parentheses.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidateEmail accepts an empty address (the field is optional) or a
// single '@' with non-blank text on both sides and a dot after it.
func ValidateEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailRegex.MatchString(email)
}

// NewValidator returns a validator with the "phone" and "optemail" tags registered
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String())
	})
	_ = v.RegisterValidation("optemail", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	return v
}

var fieldMessages = map[string]string{
	"phone":    "Invalid phone number",
	"optemail": "Invalid email address",
}

// ToValidationError converts the first validator failure into a ValidationError
func ToValidationError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	msg, ok := fieldMessages[first.Tag()]
	if !ok {
		switch first.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", first.Field())
		case "gt":
			msg = fmt.Sprintf("%s must be greater than %s", first.Field(), first.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", first.Field())
		}
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}
