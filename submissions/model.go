package submissions

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Review decision and recommendation defaults for a fresh submission.
const (
	DecisionPending       = "pending"
	RecommendationNone    = "none"
	RecommendationAccept  = "accept"
	RecommendationDecline = "decline"
)

// Comment is a reviewer note attached to a submission. Comments live inside
// the reviewer info document and are never shown to the author.
type Comment struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	AuthorID string    `json:"authorID"`
	Date     time.Time `json:"date"`
	Text     string    `json:"text"`
}

// ReviewerInfo is the editorial-side state of a submission. It is stored
// as a single JSON document alongside the row.
type ReviewerInfo struct {
	Decision       string     `json:"decision"`
	Recommendation string     `json:"recommendation"`
	LastAction     *time.Time `json:"lastAction,omitempty"`
	Comments       []Comment  `json:"comments"`
}

func (r ReviewerInfo) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *ReviewerInfo) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = ReviewerInfo{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported reviewer info type %T", src)
	}
}

// Submission is a manuscript sent to a publication. The author fields are
// frozen copies of the submitting identity; renaming the account later does
// not rewrite history.
type Submission struct {
	bun.BaseModel `bun:"table:submissions,alias:sub"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid"`
	Title         string       `bun:"title,notnull"`
	Author        string       `bun:"author,notnull"`
	AuthorID      string       `bun:"author_id,notnull"`
	Publication   string       `bun:"publication,notnull"`
	Status        string       `bun:"status,notnull"`
	FileKey       string       `bun:"file_key"`
	Reviewer      ReviewerInfo `bun:"reviewer_info,type:jsonb"`
	Submitted     time.Time    `bun:"submitted,nullzero,default:current_timestamp"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp"`
}

// New builds a fresh submission for the given author with the default
// review state.
func New(title, publication, author, authorID string) *Submission {
	now := time.Now()
	return &Submission{
		ID:          uuid.New(),
		Title:       title,
		Author:      author,
		AuthorID:    authorID,
		Publication: publication,
		Status:      DecisionPending,
		Submitted:   now,
		Reviewer: ReviewerInfo{
			Decision:       DecisionPending,
			Recommendation: RecommendationNone,
			Comments:       []Comment{},
		},
	}
}

// Serialize renders the submission for API responses. Reviewer-only fields
// (the stored file link and the editorial state) are included only when the
// caller holds reviewer access.
func (s *Submission) Serialize(reviewer bool, fileURL string) map[string]any {
	out := map[string]any{
		"id":          s.ID.String(),
		"title":       s.Title,
		"author":      s.Author,
		"authorID":    s.AuthorID,
		"submitted":   s.Submitted,
		"status":      s.Status,
		"publication": s.Publication,
	}

	if reviewer {
		out["file"] = fileURL
		out["reviewerInfo"] = s.Reviewer
	}

	return out
}
