package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sublitr/sublitr/auth"
)

func TestCanAccess(t *testing.T) {
	owner := &auth.Identity{ID: "owner-1", Email: "owner@example.com"}
	other := &auth.Identity{ID: "other-1", Email: "other@example.com"}
	editor := &auth.Identity{ID: "editor-1", Email: "editor@example.com", Editor: true}
	admin := &auth.Identity{ID: "admin-1", Email: "admin@example.com", Admin: true}
	adminEditor := &auth.Identity{ID: "both-1", Email: "both@example.com", Admin: true, Editor: true}

	tests := []struct {
		name     string
		identity *auth.Identity
		ownerID  string
		tier     auth.Tier
		want     bool
	}{
		{"anonymous denied authenticated", nil, "", auth.TierAuthenticated, false},
		{"anonymous denied admin-only", nil, "", auth.TierAdminOnly, false},
		{"any identity passes authenticated", other, "", auth.TierAuthenticated, true},

		{"self passes self-or-admin", owner, "owner-1", auth.TierSelfOrAdmin, true},
		{"admin passes self-or-admin for others", admin, "owner-1", auth.TierSelfOrAdmin, true},
		{"editor fails self-or-admin for others", editor, "owner-1", auth.TierSelfOrAdmin, false},
		{"third party fails self-or-admin", other, "owner-1", auth.TierSelfOrAdmin, false},

		{"admin passes admin-only", admin, "", auth.TierAdminOnly, true},
		{"editor fails admin-only", editor, "", auth.TierAdminOnly, false},
		{"plain user fails admin-only", other, "", auth.TierAdminOnly, false},

		{"editor passes editor-or-admin", editor, "", auth.TierEditorOrAdmin, true},
		{"admin passes editor-or-admin", admin, "", auth.TierEditorOrAdmin, true},
		{"both flags pass editor-or-admin", adminEditor, "", auth.TierEditorOrAdmin, true},
		{"plain user fails editor-or-admin", other, "", auth.TierEditorOrAdmin, false},

		{"owner passes owner-or-editor-or-admin", owner, "owner-1", auth.TierOwnerOrEditorOrAdmin, true},
		{"editor passes owner-or-editor-or-admin", editor, "owner-1", auth.TierOwnerOrEditorOrAdmin, true},
		{"admin passes owner-or-editor-or-admin", admin, "owner-1", auth.TierOwnerOrEditorOrAdmin, true},
		{"third party fails owner-or-editor-or-admin", other, "owner-1", auth.TierOwnerOrEditorOrAdmin, false},

		{"empty owner id never matches self", owner, "", auth.TierOwnerOrEditorOrAdmin, false},
		{"unknown tier denied", admin, "", auth.Tier("whatever"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.CanAccess(tt.identity, tt.ownerID, tt.tier))
		})
	}
}

// An admin must never lose an access decision by gaining a grant a lesser
// role already holds.
func TestCanAccess_AdminMonotonicity(t *testing.T) {
	admin := &auth.Identity{ID: "admin-1", Email: "admin@example.com", Admin: true}
	plain := &auth.Identity{ID: "plain-1", Email: "plain@example.com"}

	tiers := []auth.Tier{
		auth.TierAuthenticated,
		auth.TierSelfOrAdmin,
		auth.TierAdminOnly,
		auth.TierEditorOrAdmin,
		auth.TierOwnerOrEditorOrAdmin,
	}

	for _, tier := range tiers {
		t.Run(string(tier), func(t *testing.T) {
			if auth.CanAccess(plain, "someone-else", tier) {
				assert.True(t, auth.CanAccess(admin, "someone-else", tier))
			}
		})
	}
}

func TestIsReviewer(t *testing.T) {
	assert.False(t, auth.IsReviewer(nil))
	assert.False(t, auth.IsReviewer(&auth.Identity{ID: "u1"}))
	assert.True(t, auth.IsReviewer(&auth.Identity{ID: "u1", Editor: true}))
	assert.True(t, auth.IsReviewer(&auth.Identity{ID: "u1", Admin: true}))
}
