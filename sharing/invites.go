package sharing

import (
	"context"

	"albumserver/models"
	"albumserver/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type InviteFilter string

const (
	FilterPending   InviteFilter = "pending"   // active email invites
	FilterEmail     InviteFilter = "email"     // every email invite, used and expired included
	FilterShareable InviteFilter = "shareable" // every invite link, revoked included
)

// ListInvites requires CanManageMembers on the album
func (s *Service) ListInvites(ctx context.Context, caller *Identity, albumID uint64, filter InviteFilter) ([]models.Invitation, error) {
	if _, _, err := s.authorize(ctx, caller, albumID, canManage); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Preload("InvitedBy").Where("album_id = ?", albumID)
	switch filter {
	case FilterPending, "":
		query = query.Where("shareable = ? AND used_at IS NULL AND expires_at > ?", false, s.unixNow())
	case FilterEmail:
		query = query.Where("shareable = ?", false)
	case FilterShareable:
		query = query.Where("shareable = ?", true)
	default:
		return nil, invalid("unknown invite filter")
	}
	invitations := []models.Invitation{}
	if err := query.Order("created_at DESC, id DESC").Find(&invitations).Error; err != nil {
		return nil, storeFailure(err, "list invites")
	}
	return invitations, nil
}

// ListMyInvites returns the active email invites addressed to the caller
func (s *Service) ListMyInvites(ctx context.Context, caller *Identity) ([]models.Invitation, error) {
	if caller == nil || caller.ID == 0 {
		return nil, ErrNotAuthenticated
	}
	invitations := []models.Invitation{}
	err := s.db.WithContext(ctx).
		Preload("Album").
		Preload("InvitedBy").
		Where("email = ? AND shareable = ? AND used_at IS NULL AND expires_at > ?", utils.NormalizeEmail(caller.Email), false, s.unixNow()).
		Order("created_at DESC, id DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, storeFailure(err, "list my invites")
	}
	return invitations, nil
}

// CancelInvite hard deletes an invitation of an album the caller manages
func (s *Service) CancelInvite(ctx context.Context, caller *Identity, invitationID uint64) error {
	if caller == nil || caller.ID == 0 {
		return ErrNotAuthenticated
	}
	invitation, err := s.loadInvitation(ctx, invitationID)
	if err != nil {
		return err
	}
	if _, _, err := s.authorize(ctx, caller, invitation.AlbumID, canManage); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Invitation{}, "id = ?", invitation.ID).Error; err != nil {
		return storeFailure(err, "cancel invite")
	}
	return nil
}

// DeclineInvite lets the recipient of an active email invite delete it, no album role needed.
// Expired invites stay in the history like used ones.
func (s *Service) DeclineInvite(ctx context.Context, caller *Identity, token string) error {
	if caller == nil || caller.ID == 0 {
		return ErrNotAuthenticated
	}
	now := s.unixNow()
	invitation := models.Invitation{}
	err := s.db.WithContext(ctx).
		Where("token = ? AND shareable = ? AND used_at IS NULL AND expires_at > ?", token, false, now).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidOrExpiredInvite
	}
	if err != nil {
		return storeFailure(err, "load invite")
	}
	if utils.NormalizeEmail(caller.Email) != invitation.Email {
		return ErrEmailMismatch
	}
	result := s.db.WithContext(ctx).Delete(&models.Invitation{}, "id = ? AND used_at IS NULL AND expires_at > ?", invitation.ID, now)
	if result.Error != nil {
		return storeFailure(result.Error, "decline invite")
	}
	if result.RowsAffected == 0 {
		return ErrInvalidOrExpiredInvite // accepted in the meantime
	}
	return nil
}

type InvitePreview struct {
	AlbumID     uint64      `json:"album_id"`
	AlbumName   string      `json:"album_name"`
	InviterName string      `json:"inviter_name"`
	Role        models.Role `json:"role"`
	Shareable   bool        `json:"shareable"`
	Email       string      `json:"email,omitempty"`
	ExpiresAt   int64       `json:"expires_at"`
	UsesLeft    *int        `json:"uses_left,omitempty"`
}

// PreviewInvite describes an active invitation to someone holding its token, no login needed
func (s *Service) PreviewInvite(ctx context.Context, token string) (InvitePreview, error) {
	if token == "" {
		return InvitePreview{}, ErrInvalidOrExpiredInvite
	}
	invitation := models.Invitation{}
	err := s.db.WithContext(ctx).
		Preload("Album").
		Preload("InvitedBy").
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, s.unixNow()).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return InvitePreview{}, ErrInvalidOrExpiredInvite
	}
	if err != nil {
		return InvitePreview{}, storeFailure(err, "load invite")
	}
	return InvitePreview{
		AlbumID:     invitation.AlbumID,
		AlbumName:   invitation.Album.Name,
		InviterName: invitation.InvitedBy.Name,
		Role:        invitation.Role,
		Shareable:   invitation.Shareable,
		Email:       invitation.Email,
		ExpiresAt:   invitation.ExpiresAt,
		UsesLeft:    invitation.UsesLeft(),
	}, nil
}
