package sharing

import (
	"context"

	"albumserver/models"
	"albumserver/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// InviteByEmail issues a single-use invitation bound to one address.
// The caller needs CanInviteMembers on the album.
func (s *Service) InviteByEmail(ctx context.Context, caller *Identity, albumID uint64, email string, role models.Role) (models.Invitation, error) {
	album, _, err := s.authorize(ctx, caller, albumID, canInvite)
	if err != nil {
		return models.Invitation{}, err
	}
	if !role.IsAssignable() {
		return models.Invitation{}, invalid("unknown role")
	}
	email = utils.NormalizeEmail(email)
	if !utils.IsEmail(email) {
		return models.Invitation{}, invalid("a valid email address is required")
	}
	return s.issueEmailInvite(ctx, &album, caller.ID, email, role)
}

// issueEmailInvite runs the membership and duplicate checks, stores the invitation
// and then tries to notify the recipient. Authorization is up to the caller.
func (s *Service) issueEmailInvite(ctx context.Context, album *models.Album, inviterID uint64, email string, role models.Role) (models.Invitation, error) {
	now := s.unixNow()
	invitee, err := models.FindUserByEmail(s.db.WithContext(ctx), email)
	switch {
	case err == nil:
		if album.AccessList().RoleOf(invitee.ID) != models.RoleNone {
			return models.Invitation{}, ErrAlreadyMember
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return models.Invitation{}, storeFailure(err, "look up invitee")
	}

	var pending int64
	err = s.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("album_id = ? AND shareable = ? AND email = ? AND used_at IS NULL AND expires_at > ?", album.ID, false, email, now).
		Count(&pending).Error
	if err != nil {
		return models.Invitation{}, storeFailure(err, "check pending invites")
	}
	if pending > 0 {
		return models.Invitation{}, ErrDuplicateInvite
	}

	invitation := models.NewEmailInvitation(album.ID, inviterID, email, role, now)
	invitation.CreatedAt = now
	if err := s.db.WithContext(ctx).Create(&invitation).Error; err != nil {
		return models.Invitation{}, storeFailure(err, "create invite")
	}
	s.notifyInvitation(ctx, album, inviterID, &invitation)
	return invitation, nil
}

// notifyInvitation is best effort, the invitation stays valid whatever happens here
func (s *Service) notifyInvitation(ctx context.Context, album *models.Album, inviterID uint64, invitation *models.Invitation) {
	if s.notifier == nil {
		return
	}
	inviter := models.User{}
	if err := s.db.WithContext(ctx).Select("id", "name").First(&inviter, "id = ?", inviterID).Error; err != nil {
		s.log.Warn().Err(err).Uint64("user_id", inviterID).Msg("cannot load inviter for invitation notice")
	}
	notice := InvitationNotice{
		RecipientEmail: invitation.Email,
		InviterName:    inviter.Name,
		AlbumName:      album.Name,
		Role:           invitation.Role,
		AcceptURL:      s.AcceptURL(invitation.Token),
	}
	if err := s.notifier.SendInvitationNotice(ctx, notice); err != nil {
		s.log.Warn().
			Err(err).
			Uint64("invitation_id", invitation.ID).
			Uint64("album_id", album.ID).
			Str("recipient", invitation.Email).
			Msg("failed to send invitation notice")
	}
}
