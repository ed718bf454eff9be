package auth

// Tier names an access requirement a route can demand. Every privilege
// check in the API flows through CanAccess; handlers never compare role
// flags directly.
type Tier string

const (
	// TierAuthenticated admits any verified identity.
	TierAuthenticated Tier = "authenticated"
	// TierSelfOrAdmin admits the resource owner and admins.
	TierSelfOrAdmin Tier = "self-or-admin"
	// TierAdminOnly admits admins.
	TierAdminOnly Tier = "admin-only"
	// TierEditorOrAdmin admits editors and admins.
	TierEditorOrAdmin Tier = "editor-or-admin"
	// TierOwnerOrEditorOrAdmin admits the resource owner, editors and admins.
	TierOwnerOrEditorOrAdmin Tier = "owner-or-editor-or-admin"
)

// CanAccess decides whether identity may perform an action gated at the
// given tier against a resource owned by ownerID. ownerID is ignored for
// tiers that do not involve ownership. Admin and editor are independent
// flags: an account can hold either, both, or neither, and they are
// combined with OR where a tier admits both.
//
// A nil identity is anonymous and is denied every tier.
func CanAccess(identity *Identity, ownerID string, tier Tier) bool {
	if identity == nil || identity.ID == "" {
		return false
	}

	switch tier {
	case TierAuthenticated:
		return true
	case TierSelfOrAdmin:
		return identity.Admin || (ownerID != "" && identity.ID == ownerID)
	case TierAdminOnly:
		return identity.Admin
	case TierEditorOrAdmin:
		return identity.Admin || identity.Editor
	case TierOwnerOrEditorOrAdmin:
		return identity.Admin || identity.Editor || (ownerID != "" && identity.ID == ownerID)
	default:
		return false
	}
}

// IsReviewer reports whether the identity sees reviewer-only submission
// fields. It is the serialization-side twin of TierEditorOrAdmin.
func IsReviewer(identity *Identity) bool {
	return identity != nil && (identity.Admin || identity.Editor)
}
