package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account record backing every identity snapshot. Admin and
// editor are independent flags; neither implies the other.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"firstName,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"lastName,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Admin         bool       `bun:"admin,notnull,default:false" json:"admin"`
	Editor        bool       `bun:"editor,notnull,default:false" json:"editor"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Identity returns the snapshot embedded in session tokens. The password
// hash never leaves the record.
func (u *User) Identity() Identity {
	return Identity{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Admin:     u.Admin,
		Editor:    u.Editor,
	}
}

// Serialize is the public JSON shape of a user record.
func (u *User) Serialize() map[string]any {
	return map[string]any{
		"id":        u.ID.String(),
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
		"admin":     u.Admin,
		"editor":    u.Editor,
	}
}
