// ABOUTME: Client-side form validation caught before any network call
// ABOUTME: Translates validator tags into human-readable inline messages

package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoginInput is the login form.
type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterInput is the signup form.
type RegisterInput struct {
	Username        string `validate:"required,min=3,max=30"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
	Email           string `validate:"required,email"`
}

// TeamInput is the team name form.
type TeamInput struct {
	Name string `validate:"required,max=50"`
}

// ProfileInput is the profile edit form.
type ProfileInput struct {
	Email string `validate:"required,email"`
	Bio   string `validate:"max=200"`
}

// Errors is a list of human-readable validation messages.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

var v = validator.New()

// Check validates a form struct and returns Errors describing every failed
// field, or nil when the input is acceptable.
func Check(input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{err.Error()}
	}

	msgs := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := fieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "eqfield":
		return "passwords do not match"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func fieldName(name string) string {
	switch name {
	case "ConfirmPassword":
		return "confirm password"
	case "Name":
		return "team name"
	default:
		return strings.ToLower(name)
	}
}
