package server

import (
	"fmt"
	"strings"

	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// Password length limits. The ceiling is bcrypt's input limit.
const (
	passwordMinLen = 8
	passwordMaxLen = 72
)

var sizedFields = []struct {
	field string
	min   int
	max   int
}{
	{field: "password", min: passwordMinLen, max: passwordMaxLen},
	{field: "firstName", min: 1},
	{field: "lastName", min: 1},
}

var (
	requiredFields = []string{"email", "firstName", "lastName", "password"}
	trimmedFields  = []string{"email", "password"}
)

// validateRegistration checks a raw registration payload field by field.
// It works on the decoded JSON document rather than a typed struct so that
// a wrongly typed field reports "expected string" instead of failing the
// bind, and it reports the first failure in a fixed order: missing field,
// field type, whitespace, length, email format.
func validateRegistration(body map[string]any) *errors.Error {
	for _, field := range requiredFields {
		if _, ok := body[field]; !ok {
			return newValidationError("Missing field", field)
		}
	}

	for _, field := range requiredFields {
		if _, ok := body[field].(string); !ok {
			return newValidationError("Incorrect field type: expected string", field)
		}
	}

	for _, field := range trimmedFields {
		value := body[field].(string)
		if value != strings.TrimSpace(value) {
			return newValidationError("Cannot start or end with whitespace", field)
		}
	}

	for _, sized := range sizedFields {
		value := strings.TrimSpace(body[sized.field].(string))
		if sized.max > 0 && len(value) > sized.max {
			return newValidationError(
				fmt.Sprintf("Can't be more than %d characters long", sized.max),
				sized.field,
			)
		}
	}

	for _, sized := range sizedFields {
		value := strings.TrimSpace(body[sized.field].(string))
		if len(value) < sized.min {
			return newValidationError(
				fmt.Sprintf("Must be at least %d characters long", sized.min),
				sized.field,
			)
		}
	}

	if err := is.Email.Validate(body["email"].(string)); err != nil {
		return newValidationError("Invalid email address", "email")
	}

	return nil
}

// validatePasswordChange applies the registration password rules to a
// profile update. The stored hash must never come from input registration
// would have rejected.
func validatePasswordChange(value string) *errors.Error {
	if value != strings.TrimSpace(value) {
		return newValidationError("Cannot start or end with whitespace", "password")
	}
	if len(value) > passwordMaxLen {
		return newValidationError(
			fmt.Sprintf("Can't be more than %d characters long", passwordMaxLen),
			"password",
		)
	}
	if len(value) < passwordMinLen {
		return newValidationError(
			fmt.Sprintf("Must be at least %d characters long", passwordMinLen),
			"password",
		)
	}
	return nil
}
