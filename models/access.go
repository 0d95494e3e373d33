package models

type MemberRole struct {
	UserID uint64
	Role   Role
}

// AccessList is everything role resolution needs to know about an album
type AccessList struct {
	CreatorID uint64
	Members   []MemberRole
}

// RoleOf resolves the effective role of a user.
// The creator is always admin, even when a membership row says otherwise.
func (a AccessList) RoleOf(userID uint64) Role {
	if userID == 0 {
		return RoleNone
	}
	if userID == a.CreatorID {
		return RoleAdmin
	}
	for _, m := range a.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return RoleNone
}
