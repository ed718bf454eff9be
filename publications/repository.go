package publications

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrPublicationNotFound is returned for lookups of unknown publication ids.
var ErrPublicationNotFound = errors.New("publication not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("PUBLICATION_NOT_FOUND")

// Repository is the publication store surface the service consumes.
type Repository interface {
	List(ctx context.Context) ([]*Publication, error)
	GetByID(ctx context.Context, id string) (*Publication, error)
	Create(ctx context.Context, record *Publication) (*Publication, error)
	Delete(ctx context.Context, id string) error
}

// BunRepository implements Repository using Bun.
type BunRepository struct {
	db *bun.DB
}

// NewRepository creates a new publication repository.
func NewRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

var _ Repository = (*BunRepository)(nil)

// List returns every publication ordered by title.
func (r *BunRepository) List(ctx context.Context) ([]*Publication, error) {
	var records []*Publication
	err := r.db.NewSelect().
		Model(&records).
		Order("title ASC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Publication{}, nil
		}
		return nil, err
	}
	return records, nil
}

// GetByID fetches a single publication.
func (r *BunRepository) GetByID(ctx context.Context, id string) (*Publication, error) {
	record := &Publication{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}
	return record, nil
}

// Create persists a new publication.
func (r *BunRepository) Create(ctx context.Context, record *Publication) (*Publication, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "failed to create publication")
	}
	return record, nil
}

// Delete removes a publication.
func (r *BunRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*Publication)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPublicationNotFound
	}

	return nil
}
