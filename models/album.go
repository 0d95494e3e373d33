package models

const (
	PrivacyPrivate = "private"
	PrivacyPublic  = "public"
)

type Album struct {
	ID          uint64  `gorm:"primaryKey"`
	UserID      uint64  `gorm:"not null;index:user_album_created,priority:1;"` // creator, implicit admin for the album's lifetime
	User        User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   int64   `gorm:"index:user_album_created,priority:2"`
	UpdatedAt   int64
	Name        string  `gorm:"type:varchar(300)"`
	Description *string `gorm:"type:varchar(2000)"`
	Privacy     string  `gorm:"type:varchar(20);not null;default:private"`
	Members     []AlbumMember
}

func (a *Album) IsPublic() bool {
	return a.Privacy == PrivacyPublic
}

// AccessList returns the typed creator/members view used for role resolution.
// Members must be preloaded.
func (a *Album) AccessList() AccessList {
	list := AccessList{CreatorID: a.UserID, Members: make([]MemberRole, 0, len(a.Members))}
	for _, m := range a.Members {
		list.Members = append(list.Members, MemberRole{UserID: m.UserID, Role: m.Role})
	}
	return list
}

func IsValidPrivacy(privacy string) bool {
	return privacy == PrivacyPrivate || privacy == PrivacyPublic
}
