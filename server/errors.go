package server

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-repository-bun"
)

// Error body shapes. Every failure the API emits is one of these; handlers
// return rich errors and renderError decides the wire format.
type validationError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

type apiError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// newValidationError builds the 422 payload contract for a field failure.
func newValidationError(message, location string) *errors.Error {
	return errors.New(message, errors.CategoryValidation).
		WithCode(fiber.StatusUnprocessableEntity).
		WithTextCode("VALIDATION_ERROR").
		WithMetadata(map[string]any{"location": location})
}

func (s *Server) renderError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	s.logger.Debug(
		"request error category=%s text_code=%s details=%s",
		richErr.Category, richErr.TextCode, print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return s.renderValidationError(c, richErr)
	case errors.CategoryAuth, errors.CategoryAuthz:
		return s.renderAuthError(c, richErr)
	case errors.CategoryConflict:
		return c.Status(fiber.StatusConflict).JSON(apiError{
			Code:    fiber.StatusConflict,
			Reason:  "Conflict",
			Message: richErr.Message,
		})
	case errors.CategoryNotFound:
		return c.Status(fiber.StatusNotFound).JSON(apiError{
			Code:    fiber.StatusNotFound,
			Reason:  "NotFound",
			Message: "No document with that ID",
		})
	default:
		// categories outside the contract still carry an HTTP code worth
		// honoring; the repository layer reports missing records this way
		if richErr.Code == fiber.StatusNotFound || repository.IsRecordNotFound(richErr) {
			return c.Status(fiber.StatusNotFound).JSON(apiError{
				Code:    fiber.StatusNotFound,
				Reason:  "NotFound",
				Message: "No document with that ID",
			})
		}

		s.logger.Error("internal error: %v", richErr)
		return c.Status(fiber.StatusInternalServerError).JSON(apiError{
			Code:    fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func (s *Server) renderValidationError(c *fiber.Ctx, richErr *errors.Error) error {
	code := richErr.Code
	if code == 0 {
		code = fiber.StatusUnprocessableEntity
	}

	location := ""
	if loc, ok := richErr.Metadata["location"].(string); ok {
		location = loc
	}

	if code == fiber.StatusBadRequest {
		return c.Status(code).JSON(apiError{
			Code:    code,
			Reason:  "BadRequest",
			Message: richErr.Message,
		})
	}

	return c.Status(code).JSON(validationError{
		Code:     code,
		Reason:   "ValidationError",
		Message:  richErr.Message,
		Location: location,
	})
}

// renderAuthError keeps failure bodies generic. Privilege failures are 401
// across the board; the only 403 in the API is deleting an admin account.
func (s *Server) renderAuthError(c *fiber.Ctx, richErr *errors.Error) error {
	code := richErr.Code
	if code != http.StatusForbidden {
		code = http.StatusUnauthorized
	}

	return c.Status(code).JSON(apiError{
		Code:    code,
		Reason:  "AuthenticationError",
		Message: richErr.Message,
	})
}
