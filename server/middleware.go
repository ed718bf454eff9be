package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sublitr/sublitr/auth"
)

const (
	identityKey = "identity"
	rawTokenKey = "rawToken"
)

// RequireAuth extracts the bearer token, verifies it, and stores the
// identity and the raw token in the request locals. Every failure renders
// 401; the distinction between expired, forged, and malformed tokens stays
// in the logs.
func (s *Server) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return s.renderError(c, auth.ErrTokenMalformed)
		}

		identity, err := s.auther.VerifyToken(raw)
		if err != nil {
			s.logger.Info("token verification failed: %v", err)
			return s.renderError(c, err)
		}

		c.Locals(identityKey, &identity)
		c.Locals(rawTokenKey, raw)

		return c.Next()
	}
}

// IdentityFromCtx returns the verified identity for the request, or nil on
// unprotected routes.
func IdentityFromCtx(c *fiber.Ctx) *auth.Identity {
	if identity, ok := c.Locals(identityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

// RawTokenFromCtx returns the bearer token the request presented.
func RawTokenFromCtx(c *fiber.Ctx) string {
	if raw, ok := c.Locals(rawTokenKey).(string); ok {
		return raw
	}
	return ""
}

func bearerToken(header string) (string, bool) {
	const scheme = "Bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}

	token := strings.TrimSpace(header[len(scheme):])
	return token, token != ""
}
