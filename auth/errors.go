package auth

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is the only error a failed login exposes. A missing
// account and a wrong password both collapse into it so responses carry no
// email-existence signal.
var ErrInvalidCredentials = errors.New("Incorrect email or password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrMismatchedHashAndPassword reports a bcrypt comparison failure.
var ErrMismatchedHashAndPassword = errors.New("hashed password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString rejects empty input to the password hasher.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode("EMPTY_PASSWORD")

// ErrTokenExpired is returned for a structurally valid, correctly signed
// token whose expiry has passed.
var ErrTokenExpired = errors.New("Session token expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenSignature is returned for a bad signature or an unexpected
// signing algorithm. Algorithm confusion is rejected, never coerced.
var ErrTokenSignature = errors.New("Invalid token signature", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_BAD_SIGNATURE")

// ErrTokenMalformed covers structural parse failures and claim payloads
// missing required identity fields.
var ErrTokenMalformed = errors.New("Missing or malformed session token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrSigningKeyMissing is a fatal configuration error, not a per-call one.
var ErrSigningKeyMissing = errors.New("token signing key is not configured", errors.CategoryInternal).
	WithCode(errors.CodeInternal).
	WithTextCode("SIGNING_KEY_MISSING")

// ErrNotAuthorized is the generic insufficient-privilege error. It maps to
// 401 rather than 403 on purpose: status codes must not leak whether the
// resource exists.
var ErrNotAuthorized = errors.New("Not authorized", errors.CategoryAuthz).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("NOT_AUTHORIZED")

// ErrCannotDeleteAdmin is the single 403 in the API: admin accounts can only
// be removed by themselves.
var ErrCannotDeleteAdmin = errors.New("Cannot delete an admin account", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode("DELETE_ADMIN_ACCOUNT")

// ErrEmailTaken is returned when a registration targets an address that
// already has an account. It carries the validation payload shape so the
// API renders it like any other field failure.
var ErrEmailTaken = errors.New("User with that email already exists", errors.CategoryValidation).
	WithCode(http.StatusUnprocessableEntity).
	WithTextCode("EMAIL_TAKEN").
	WithMetadata(map[string]any{"location": "email"})

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
