package authgate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/overtuned/authgate/forms"
)

// Local input schemas, checked before any backend round trip. Field names
// double as the error bucket keys after lowercasing.

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type signupInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

type verifyEmailInput struct {
	Key string `validate:"required"`
}

type emailInput struct {
	Email string `validate:"required,email"`
}

type resetPasswordInput struct {
	Key      string `validate:"required"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

// checkInput runs the operation's local schema. A false return carries the
// field-keyed messages and means the backend must not be contacted.
func (e *Engine) checkInput(in any) (forms.Errors, bool) {
	err := e.validate.Struct(in)
	if err == nil {
		return forms.Errors{}, true
	}

	var fieldErrs forms.Errors

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		fieldErrs.AppendGlobal(msgUnknownFailure)
		return fieldErrs, false
	}

	for _, v := range violations {
		fieldErrs.Append(forms.Field(strings.ToLower(v.StructField())), schemaMessage(v))
	}

	return fieldErrs, false
}

func schemaMessage(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Password must be at least " + v.Param() + " characters."
	case "eqfield":
		return "Passwords do not match."
	default:
		return "This value is invalid."
	}
}
