package sharing

import (
	"context"
	"strconv"

	"albumserver/models"
	"albumserver/utils"
)

// RequestJoin lets any user ask to join a public album.
// The request is stored as an ordinary viewer email invite addressed to the requester.
func (s *Service) RequestJoin(ctx context.Context, caller *Identity, albumID uint64) (models.Invitation, error) {
	if caller == nil || caller.ID == 0 {
		return models.Invitation{}, ErrNotAuthenticated
	}
	album, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return models.Invitation{}, err
	}
	if !album.IsPublic() {
		return models.Invitation{}, newError(KindForbidden, "this album is not public")
	}
	if album.AccessList().RoleOf(caller.ID) != models.RoleNone {
		return models.Invitation{}, ErrAlreadyMember
	}
	email := utils.NormalizeEmail(caller.Email)
	if !utils.IsEmail(email) {
		return models.Invitation{}, invalid("your account has no valid email address")
	}
	allowed, err := models.HitRateCounter(s.db.WithContext(ctx), "join:"+strconv.FormatUint(caller.ID, 10),
		s.joinLimit, int64(s.joinWindow.Seconds()), s.unixNow())
	if err != nil {
		return models.Invitation{}, storeFailure(err, "count join requests")
	}
	if !allowed {
		return models.Invitation{}, ErrRateLimited
	}
	return s.issueEmailInvite(ctx, &album, caller.ID, email, models.RoleViewer)
}
