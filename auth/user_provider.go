package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// UserLookup is the slice of the user store credential verification needs.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// UserProvider verifies credentials against the user store. It never
// writes: login attempts do not mutate the account record.
type UserProvider struct {
	store  UserLookup
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserLookup) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity snapshot. An unknown email and a wrong password return the same
// error so callers cannot probe which addresses have accounts.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.IsNotFound(err) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return Identity{}, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, errors.Wrap(err, errors.CategoryInternal, "failed to compare password hash")
	}

	return user.Identity(), nil
}

var _ IdentityProvider = (*UserProvider)(nil)
