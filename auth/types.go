package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// Logger is the minimal logging surface the auth package needs.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity is the authenticated snapshot of a user embedded in session
// tokens and used for every authorization decision. It does not refresh
// when the user record changes; callers get a new snapshot at login or
// token refresh.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
	Editor    bool   `json:"editor"`
}

// FullName returns the display name used on submissions.
func (i Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Refresh(rawToken string) (string, error)
	VerifyToken(rawToken string) (Identity, error)
}

// IdentityProvider verifies credentials against a backing store.
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, email, password string) (Identity, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// RepositoryManager exposes the repositories the auth core depends on.
type RepositoryManager interface {
	Users() Users
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
