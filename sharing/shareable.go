package sharing

import (
	"context"

	"albumserver/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateShareable issues a multi-use invite link. Only admins may do this.
// maxUses nil means unlimited.
func (s *Service) CreateShareable(ctx context.Context, caller *Identity, albumID uint64, role models.Role, maxUses *int) (models.Invitation, error) {
	album, _, err := s.authorize(ctx, caller, albumID, isAdmin)
	if err != nil {
		return models.Invitation{}, err
	}
	if !role.IsAssignable() {
		return models.Invitation{}, invalid("unknown role")
	}
	if maxUses != nil && *maxUses <= 0 {
		return models.Invitation{}, invalid("max uses must be a positive number")
	}
	now := s.unixNow()
	var active int64
	err = s.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("album_id = ? AND shareable = ? AND used_at IS NULL AND expires_at > ?", album.ID, true, now).
		Count(&active).Error
	if err != nil {
		return models.Invitation{}, storeFailure(err, "count invite links")
	}
	if active >= models.MaxActiveShareable {
		return models.Invitation{}, ErrInviteQuotaExceeded
	}
	invitation := models.NewShareableInvitation(album.ID, caller.ID, role, maxUses, now)
	invitation.CreatedAt = now
	if err := s.db.WithContext(ctx).Create(&invitation).Error; err != nil {
		return models.Invitation{}, storeFailure(err, "create invite link")
	}
	return invitation, nil
}

// RevokeShareable deactivates an invite link right away by moving its expiration to now.
// The row is kept for the audit trail.
func (s *Service) RevokeShareable(ctx context.Context, caller *Identity, invitationID uint64) error {
	if caller == nil || caller.ID == 0 {
		return ErrNotAuthenticated
	}
	invitation, err := s.loadInvitation(ctx, invitationID)
	if err != nil {
		return err
	}
	if !invitation.Shareable {
		return invalid("only invite links can be revoked, cancel email invites instead")
	}
	if _, _, err := s.authorize(ctx, caller, invitation.AlbumID, isAdmin); err != nil {
		return err
	}
	now := s.unixNow()
	err = s.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND expires_at > ?", invitation.ID, now).
		UpdateColumn("expires_at", now).Error
	if err != nil {
		return storeFailure(err, "revoke invite link")
	}
	return nil
}

func (s *Service) loadInvitation(ctx context.Context, invitationID uint64) (models.Invitation, error) {
	invitation := models.Invitation{}
	err := s.db.WithContext(ctx).First(&invitation, "id = ?", invitationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invitation, notFound("invite")
	}
	if err != nil {
		return invitation, storeFailure(err, "load invite")
	}
	return invitation, nil
}
