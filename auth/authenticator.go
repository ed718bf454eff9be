package auth

import (
	"context"
)

// Auther ties credential verification and token handling together behind
// the Authenticator interface.
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, tokenService TokenService) *Auther {
	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and returns a fresh session token.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Error("Login verify identity error: %v", err)
		return "", err
	}

	if identity.ID == "" {
		s.logger.Error("Login identity is zero value")
		return "", ErrIdentityNotFound
	}

	return s.tokenService.Issue(identity)
}

// VerifyToken validates a raw token and returns the identity snapshot it
// carries.
func (s *Auther) VerifyToken(rawToken string) (Identity, error) {
	claims, err := s.tokenService.Validate(rawToken)
	if err != nil {
		return Identity{}, err
	}
	return claims.Identity(), nil
}

// Refresh verifies the presented token and re-issues the same identity
// snapshot with a fresh expiry. The user store is not consulted: role
// changes made since login only take effect at expiry or next login.
func (s *Auther) Refresh(rawToken string) (string, error) {
	claims, err := s.tokenService.Validate(rawToken)
	if err != nil {
		s.logger.Error("Refresh token validation failed: %v", err)
		return "", err
	}

	return s.tokenService.Issue(claims.Identity())
}

var _ Authenticator = (*Auther)(nil)
