package models

// AlbumMember ties one user to one album with exactly one role.
// The album creator is an implicit admin and normally has no row here.
type AlbumMember struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	AlbumID   uint64 `gorm:"not null;index:uniq_album_user,unique,priority:1"`
	Album     Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64 `gorm:"not null;index:uniq_album_user,unique,priority:2"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role      Role   `gorm:"type:varchar(20);not null"`
}
