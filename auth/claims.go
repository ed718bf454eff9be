package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the JWT payload for a sublitr session. The identity
// snapshot travels under the `user` key and the registered subject carries
// the email, so either field alone is enough to recognize the account.
type SessionClaims struct {
	jwt.RegisteredClaims
	User Identity `json:"user"`
}

// Identity returns the embedded snapshot.
func (c *SessionClaims) Identity() Identity {
	return c.User
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued-at time. It is deliberately not named after
// the embedded RegisteredClaims field so the field stays reachable.
func (c *SessionClaims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// wellFormed checks the claim payload carries the fields every consumer
// relies on. A token without them is treated as malformed even when the
// signature checks out.
func (c *SessionClaims) wellFormed() bool {
	return c.User.ID != "" && c.User.Email != ""
}
