package sharing

import (
	"context"

	"albumserver/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberInfo struct {
	ID        uint64      `json:"id"` // 0 for the creator, who has no membership row
	UserID    uint64      `json:"user_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	IsCreator bool        `json:"is_creator"`
}

// ListMembers is open to anyone with a role on the album. The creator comes first.
func (s *Service) ListMembers(ctx context.Context, caller *Identity, albumID uint64) ([]MemberInfo, error) {
	album, _, err := s.authorize(ctx, caller, albumID, anyRole)
	if err != nil {
		return nil, err
	}
	creator := models.User{}
	if err := s.db.WithContext(ctx).First(&creator, "id = ?", album.UserID).Error; err != nil {
		return nil, storeFailure(err, "load album creator")
	}
	members := []models.AlbumMember{}
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("album_id = ? AND user_id <> ?", albumID, album.UserID).
		Order("created_at ASC, id ASC").
		Find(&members).Error
	if err != nil {
		return nil, storeFailure(err, "list members")
	}
	result := make([]MemberInfo, 0, len(members)+1)
	result = append(result, MemberInfo{
		UserID:    creator.ID,
		Name:      creator.Name,
		Email:     creator.Email,
		Role:      models.RoleAdmin,
		IsCreator: true,
	})
	for _, m := range members {
		result = append(result, MemberInfo{
			ID:     m.ID,
			UserID: m.UserID,
			Name:   m.User.Name,
			Email:  m.User.Email,
			Role:   m.Role,
		})
	}
	return result, nil
}

// AddMember adds an existing user directly, without an invitation
func (s *Service) AddMember(ctx context.Context, caller *Identity, albumID, userID uint64, role models.Role) (models.AlbumMember, error) {
	album, _, err := s.authorize(ctx, caller, albumID, canManage)
	if err != nil {
		return models.AlbumMember{}, err
	}
	if !role.IsAssignable() {
		return models.AlbumMember{}, invalid("unknown role")
	}
	if album.AccessList().RoleOf(userID) != models.RoleNone {
		return models.AlbumMember{}, ErrAlreadyMember
	}
	var users int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&users).Error; err != nil {
		return models.AlbumMember{}, storeFailure(err, "look up user")
	}
	if users == 0 {
		return models.AlbumMember{}, notFound("user")
	}
	now := s.unixNow()
	member := models.AlbumMember{AlbumID: albumID, UserID: userID, Role: role, CreatedAt: now, UpdatedAt: now}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&member)
	if result.Error != nil {
		return models.AlbumMember{}, storeFailure(result.Error, "add member")
	}
	if result.RowsAffected == 0 {
		return models.AlbumMember{}, ErrAlreadyMember // lost a race with an invite acceptance
	}
	return member, nil
}

// ChangeRole updates another member's role. The creator's standing and the caller's own row are off limits.
func (s *Service) ChangeRole(ctx context.Context, caller *Identity, memberID uint64, role models.Role) (models.AlbumMember, error) {
	member, err := s.manageableMember(ctx, caller, memberID)
	if err != nil {
		return models.AlbumMember{}, err
	}
	if !role.IsAssignable() {
		return models.AlbumMember{}, invalid("unknown role")
	}
	err = s.db.WithContext(ctx).Model(&models.AlbumMember{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{"role": role, "updated_at": s.unixNow()}).Error
	if err != nil {
		return models.AlbumMember{}, storeFailure(err, "change role")
	}
	member.Role = role
	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, caller *Identity, memberID uint64) error {
	member, err := s.manageableMember(ctx, caller, memberID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.AlbumMember{}, "id = ?", member.ID).Error; err != nil {
		return storeFailure(err, "remove member")
	}
	return nil
}

func (s *Service) manageableMember(ctx context.Context, caller *Identity, memberID uint64) (models.AlbumMember, error) {
	if caller == nil || caller.ID == 0 {
		return models.AlbumMember{}, ErrNotAuthenticated
	}
	member := models.AlbumMember{}
	err := s.db.WithContext(ctx).First(&member, "id = ?", memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return member, notFound("member")
	}
	if err != nil {
		return member, storeFailure(err, "load member")
	}
	album, _, err := s.authorize(ctx, caller, member.AlbumID, canManage)
	if err != nil {
		return member, err
	}
	if member.UserID == album.UserID {
		return member, newError(KindForbidden, "the album creator is always an admin")
	}
	if member.UserID == caller.ID {
		return member, newError(KindForbidden, "you cannot change your own membership")
	}
	return member, nil
}
