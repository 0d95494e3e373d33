package models

// Role is scoped to a single album membership
type Role string

const (
	RoleNone        Role = "" // no relation to the album
	RoleAdmin       Role = "admin"
	RoleContributor Role = "contributor"
	RoleViewer      Role = "viewer"
)

// Capabilities is the set of actions a role permits within one album
type Capabilities struct {
	CanInviteMembers     bool `json:"can_invite_members"`
	CanManageMembers     bool `json:"can_manage_members"` // change roles, remove members, view and cancel invites
	CanEditAlbum         bool `json:"can_edit_album"`
	CanDeleteAlbum       bool `json:"can_delete_album"`
	CanCreatePosts       bool `json:"can_create_posts"`
	CanDeleteOthersPosts bool `json:"can_delete_others_posts"`
}

// CapabilitiesFor maps a role to its capabilities. Unknown roles get nothing.
func CapabilitiesFor(role Role) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			CanInviteMembers:     true,
			CanManageMembers:     true,
			CanEditAlbum:         true,
			CanDeleteAlbum:       true,
			CanCreatePosts:       true,
			CanDeleteOthersPosts: true,
		}
	case RoleContributor:
		return Capabilities{CanCreatePosts: true}
	default:
		return Capabilities{}
	}
}

// IsAssignable reports whether the role can be stored on a membership or invitation
func (r Role) IsAssignable() bool {
	return r == RoleAdmin || r == RoleContributor || r == RoleViewer
}
