package models

import "albumserver/utils"

const (
	EmailInvitationTTL     = 7 * 86400  // seconds
	ShareableInvitationTTL = 30 * 86400 // seconds
	MaxActiveShareable     = 10         // per album
)

// Invitation is a token-bearing offer to join an album with a pre-assigned role.
// Email invitations are bound to one address and consumed once (UsedAt).
// Shareable invitations are open links counted with UsesCount up to MaxUses (nil = unlimited).
type Invitation struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	AlbumID     uint64 `gorm:"not null;index:album_active,priority:1"`
	Album       Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Email       string `gorm:"type:varchar(150);not null;default:'';index"` // empty for shareable
	InvitedByID uint64 `gorm:"not null"`
	InvitedBy   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role        Role   `gorm:"type:varchar(20);not null"`
	Token       string `gorm:"type:varchar(120);index:uniq_invitation_token,unique"`
	Shareable   bool   `gorm:"not null;default:false;index:album_active,priority:2"`
	UsedAt      *int64 `gorm:"index:album_active,priority:3"`
	ExpiresAt   int64  `gorm:"not null;index:album_active,priority:4"`
	MaxUses     *int
	UsesCount   int `gorm:"not null;default:0"`
}

func NewEmailInvitation(albumID, invitedBy uint64, email string, role Role, now int64) Invitation {
	return Invitation{
		AlbumID:     albumID,
		Email:       email,
		InvitedByID: invitedBy,
		Role:        role,
		Token:       utils.RandToken(),
		ExpiresAt:   now + EmailInvitationTTL,
	}
}

func NewShareableInvitation(albumID, invitedBy uint64, role Role, maxUses *int, now int64) Invitation {
	return Invitation{
		AlbumID:     albumID,
		InvitedByID: invitedBy,
		Role:        role,
		Token:       utils.RandToken(),
		Shareable:   true,
		ExpiresAt:   now + ShareableInvitationTTL,
		MaxUses:     maxUses,
	}
}

// IsActive is true while the invitation is unused and not past its expiration
func (i *Invitation) IsActive(now int64) bool {
	return i.UsedAt == nil && now < i.ExpiresAt
}

// IsExhausted reports whether a shareable invitation reached its ceiling
func (i *Invitation) IsExhausted() bool {
	return i.Shareable && i.MaxUses != nil && i.UsesCount >= *i.MaxUses
}

// UsesLeft is nil for unlimited invitations
func (i *Invitation) UsesLeft() *int {
	if !i.Shareable || i.MaxUses == nil {
		return nil
	}
	left := *i.MaxUses - i.UsesCount
	if left < 0 {
		left = 0
	}
	return &left
}
