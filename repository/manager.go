package repository

import (
	"context"
	"database/sql"

	"github.com/sublitr/sublitr/auth"
	"github.com/sublitr/sublitr/publications"
	"github.com/sublitr/sublitr/submissions"
	"github.com/uptrace/bun"
)

// Manager exposes all repositories behind one handle so handlers and
// commands share a single transaction entry point.
type Manager interface {
	auth.RepositoryManager
	Submissions() submissions.Repository
	Publications() publications.Repository
}

type manager struct {
	db           *bun.DB
	users        auth.Users
	submissions  submissions.Repository
	publications publications.Repository
}

// New builds the repository manager over a bun handle.
func New(db *bun.DB) Manager {
	return &manager{
		db:           db,
		users:        auth.NewUsersRepository(db),
		submissions:  submissions.NewRepository(db),
		publications: publications.NewRepository(db),
	}
}

func (m *manager) Users() auth.Users {
	return m.users
}

func (m *manager) Submissions() submissions.Repository {
	return m.submissions
}

func (m *manager) Publications() publications.Repository {
	return m.publications
}

func (m *manager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return m.db.RunInTx(ctx, opts, f)
}

var _ auth.RepositoryManager = (*manager)(nil)
