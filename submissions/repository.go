package submissions

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrSubmissionNotFound is returned for lookups of unknown submission ids.
var ErrSubmissionNotFound = errors.New("submission not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("SUBMISSION_NOT_FOUND")

// Repository is the submission store surface the service consumes.
type Repository interface {
	List(ctx context.Context) ([]*Submission, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Submission, error)
	GetByID(ctx context.Context, id string) (*Submission, error)
	Create(ctx context.Context, record *Submission) (*Submission, error)
	UpdateReview(ctx context.Context, id, decision, recommendation string) (*Submission, error)
	AddComment(ctx context.Context, id string, comment Comment) (*Submission, error)
	Delete(ctx context.Context, id string) error
}

// BunRepository implements Repository using Bun.
type BunRepository struct {
	db *bun.DB
}

// NewRepository creates a new submission repository.
func NewRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

var _ Repository = (*BunRepository)(nil)

// List returns every submission, newest first.
func (r *BunRepository) List(ctx context.Context) ([]*Submission, error) {
	var records []*Submission
	err := r.db.NewSelect().
		Model(&records).
		Order("submitted DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Submission{}, nil
		}
		return nil, err
	}
	return records, nil
}

// ListByAuthor returns the submissions owned by authorID, newest first.
func (r *BunRepository) ListByAuthor(ctx context.Context, authorID string) ([]*Submission, error) {
	var records []*Submission
	err := r.db.NewSelect().
		Model(&records).
		Where("author_id = ?", authorID).
		Order("submitted DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Submission{}, nil
		}
		return nil, err
	}
	return records, nil
}

// GetByID fetches a single submission.
func (r *BunRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	record := &Submission{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return record, nil
}

// Create persists a new submission.
func (r *BunRepository) Create(ctx context.Context, record *Submission) (*Submission, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create submission")
	}
	return record, nil
}

// UpdateReview applies a decision and/or recommendation change and bumps
// the review's last-action timestamp. The author-facing status mirrors the
// decision. Empty arguments leave the corresponding field untouched.
func (r *BunRepository) UpdateReview(ctx context.Context, id, decision, recommendation string) (*Submission, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if decision != "" {
		record.Reviewer.Decision = decision
		record.Status = decision
	}
	if recommendation != "" {
		record.Reviewer.Recommendation = recommendation
	}

	now := time.Now()
	record.Reviewer.LastAction = &now
	record.UpdatedAt = &now

	_, err = r.db.NewUpdate().
		Model(record).
		Column("status", "reviewer_info", "updated_at").
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update submission review")
	}

	return record, nil
}

// AddComment appends a reviewer comment and bumps the last-action timestamp.
func (r *BunRepository) AddComment(ctx context.Context, id string, comment Comment) (*Submission, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.Date.IsZero() {
		comment.Date = time.Now()
	}

	record.Reviewer.Comments = append(record.Reviewer.Comments, comment)
	now := time.Now()
	record.Reviewer.LastAction = &now
	record.UpdatedAt = &now

	_, err = r.db.NewUpdate().
		Model(record).
		Column("reviewer_info", "updated_at").
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to add submission comment")
	}

	return record, nil
}

// Delete removes a submission.
func (r *BunRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*Submission)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}
