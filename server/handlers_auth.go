package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
			WithCode(fiber.StatusBadRequest))
	}

	// an absent credential is a client bug, not a failed login
	if err := payload.Validate(); err != nil {
		return s.renderError(c, errors.New("Missing credentials", errors.CategoryBadInput).
			WithCode(fiber.StatusBadRequest).
			WithMetadata(map[string]any{"validation": err.Error()}))
	}

	token, err := s.auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		s.logger.Info("login failed: %v", err)
		return s.renderError(c, err)
	}

	return c.JSON(fiber.Map{"authToken": token})
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	token, err := s.auther.Refresh(RawTokenFromCtx(c))
	if err != nil {
		return s.renderError(c, err)
	}

	return c.JSON(fiber.Map{"authToken": token})
}
