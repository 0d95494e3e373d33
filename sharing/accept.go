package sharing

import (
	"context"

	"albumserver/models"
	"albumserver/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AcceptInvite joins the caller to the invitation's album and returns the album id.
//
// Consumption and the membership insert happen in one transaction. The
// consumption is a single guarded UPDATE, so concurrent acceptances of the same
// token serialize in the store and can never push uses_count past max_uses or
// use an email invitation twice. A lost race rolls back the membership too.
func (s *Service) AcceptInvite(ctx context.Context, caller *Identity, token string) (uint64, error) {
	if caller == nil || caller.ID == 0 {
		return 0, ErrNotAuthenticated
	}
	if token == "" {
		return 0, ErrInvalidOrExpiredInvite
	}
	now := s.unixNow()
	invitation, err := s.activeInvitation(ctx, token, now)
	if err != nil {
		return 0, err
	}

	if invitation.Shareable {
		if invitation.IsExhausted() {
			return 0, ErrMaxUsesReached
		}
	} else if utils.NormalizeEmail(caller.Email) != invitation.Email {
		return 0, ErrEmailMismatch
	}
	album, err := s.loadAlbum(ctx, invitation.AlbumID)
	if err != nil {
		return 0, err
	}
	if album.AccessList().RoleOf(caller.ID) != models.RoleNone {
		return 0, ErrAlreadyMember
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consume(tx, &invitation, now); err != nil {
			return err
		}
		member := models.AlbumMember{
			AlbumID:   invitation.AlbumID,
			UserID:    caller.ID,
			Role:      invitation.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member)
		if result.Error != nil {
			return storeFailure(result.Error, "add member")
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyMember
		}
		return nil
	})
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return 0, err
		}
		return 0, storeFailure(err, "accept invite")
	}
	s.log.Info().
		Uint64("album_id", invitation.AlbumID).
		Uint64("user_id", caller.ID).
		Uint64("invitation_id", invitation.ID).
		Bool("shareable", invitation.Shareable).
		Msg("invitation accepted")
	return invitation.AlbumID, nil
}

// consume records one use of the invitation with a single conditional statement
func consume(tx *gorm.DB, invitation *models.Invitation, now int64) error {
	if invitation.Shareable {
		result := tx.Model(&models.Invitation{}).
			Where("id = ? AND used_at IS NULL AND expires_at > ? AND (max_uses IS NULL OR uses_count < max_uses)", invitation.ID, now).
			UpdateColumn("uses_count", gorm.Expr("uses_count + 1"))
		if result.Error != nil {
			return storeFailure(result.Error, "count invite use")
		}
		if result.RowsAffected == 0 {
			if invitation.MaxUses == nil {
				return ErrInvalidOrExpiredInvite // revoked in the meantime
			}
			return ErrMaxUsesReached
		}
		invitation.UsesCount++
		return nil
	}
	result := tx.Model(&models.Invitation{}).
		Where("id = ? AND used_at IS NULL AND expires_at > ?", invitation.ID, now).
		UpdateColumn("used_at", now)
	if result.Error != nil {
		return storeFailure(result.Error, "mark invite used")
	}
	if result.RowsAffected == 0 {
		return ErrInvalidOrExpiredInvite
	}
	invitation.UsedAt = &now
	return nil
}

// activeInvitation finds an unused, unexpired invitation by token
func (s *Service) activeInvitation(ctx context.Context, token string, now int64) (models.Invitation, error) {
	invitation := models.Invitation{}
	err := s.db.WithContext(ctx).
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, now).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invitation, ErrInvalidOrExpiredInvite
	}
	if err != nil {
		return invitation, storeFailure(err, "load invite")
	}
	return invitation, nil
}
