package publications

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Publication is a journal manuscripts can be submitted to. The image is an
// optional cover stored in the blob store under ImageKey.
type Publication struct {
	bun.BaseModel `bun:"table:publications,alias:pub"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid"`
	Title         string     `bun:"title,notnull,unique"`
	Description   string     `bun:"description"`
	ImageKey      string     `bun:"image_key"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// New builds a publication record.
func New(title, description string) *Publication {
	return &Publication{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

// Serialize renders the publication for API responses.
func (p *Publication) Serialize(imageURL string) map[string]any {
	return map[string]any{
		"id":          p.ID.String(),
		"title":       p.Title,
		"description": p.Description,
		"image":       imageURL,
	}
}
