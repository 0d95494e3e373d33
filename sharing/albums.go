package sharing

import (
	"context"
	"strings"

	"albumserver/models"

	"gorm.io/gorm"
)

type AlbumInput struct {
	Name        string
	Description *string // nil keeps the current value on update, blank clears it
	Privacy     string // empty keeps the current value, private for new albums
}

func (in *AlbumInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("album name is required")
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		in.Description = &d
		if d == "" {
			in.Description = nil
		}
	}
	if in.Privacy != "" && !models.IsValidPrivacy(in.Privacy) {
		return invalid("privacy must be private or public")
	}
	return nil
}

// CreateAlbum stores a new album. The caller becomes its creator and implicit admin.
func (s *Service) CreateAlbum(ctx context.Context, caller *Identity, in AlbumInput) (models.Album, error) {
	if caller == nil || caller.ID == 0 {
		return models.Album{}, ErrNotAuthenticated
	}
	if err := in.normalize(); err != nil {
		return models.Album{}, err
	}
	if in.Privacy == "" {
		in.Privacy = models.PrivacyPrivate
	}
	album := models.Album{
		UserID:      caller.ID,
		Name:        in.Name,
		Description: in.Description,
		Privacy:     in.Privacy,
	}
	if err := s.db.WithContext(ctx).Create(&album).Error; err != nil {
		return models.Album{}, storeFailure(err, "create album")
	}
	return album, nil
}

func (s *Service) UpdateAlbum(ctx context.Context, caller *Identity, albumID uint64, in AlbumInput) (models.Album, error) {
	album, _, err := s.authorize(ctx, caller, albumID, func(r models.Role) bool {
		return models.CapabilitiesFor(r).CanEditAlbum
	})
	if err != nil {
		return album, err
	}
	setDescription := in.Description != nil
	if err := in.normalize(); err != nil {
		return album, err
	}
	updates := map[string]interface{}{"name": in.Name}
	if setDescription {
		updates["description"] = in.Description
		album.Description = in.Description
	}
	if in.Privacy != "" {
		updates["privacy"] = in.Privacy
	}
	if err := s.db.WithContext(ctx).Model(&models.Album{ID: album.ID}).Updates(updates).Error; err != nil {
		return album, storeFailure(err, "update album")
	}
	album.Name = in.Name
	if in.Privacy != "" {
		album.Privacy = in.Privacy
	}
	return album, nil
}

// DeleteAlbum removes the album together with its memberships and invitations
func (s *Service) DeleteAlbum(ctx context.Context, caller *Identity, albumID uint64) error {
	_, _, err := s.authorize(ctx, caller, albumID, func(r models.Role) bool {
		return models.CapabilitiesFor(r).CanDeleteAlbum
	})
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Invitation{}, "album_id = ?", albumID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.AlbumMember{}, "album_id = ?", albumID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Album{}, "id = ?", albumID).Error
	})
	if err != nil {
		return storeFailure(err, "delete album")
	}
	return nil
}

type AlbumSummary struct {
	ID          uint64      `json:"id"`
	Owner       uint64      `json:"owner"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Privacy     string      `json:"privacy"`
	Role        models.Role `json:"role"`
}

// ListAlbums returns the albums the caller created or is a member of, newest first
func (s *Service) ListAlbums(ctx context.Context, caller *Identity) ([]AlbumSummary, error) {
	if caller == nil || caller.ID == 0 {
		return nil, ErrNotAuthenticated
	}
	albums := []models.Album{}
	err := s.db.WithContext(ctx).
		Preload("Members").
		Where("albums.user_id = ? OR EXISTS (SELECT 1 FROM album_members WHERE album_members.album_id = albums.id AND album_members.user_id = ?)", caller.ID, caller.ID).
		Order("albums.created_at DESC, albums.id DESC").
		Find(&albums).Error
	if err != nil {
		return nil, storeFailure(err, "list albums")
	}
	result := make([]AlbumSummary, 0, len(albums))
	for _, a := range albums {
		summary := AlbumSummary{
			ID:      a.ID,
			Owner:   a.UserID,
			Name:    a.Name,
			Privacy: a.Privacy,
			Role:    a.AccessList().RoleOf(caller.ID),
		}
		if a.Description != nil {
			summary.Description = *a.Description
		}
		result = append(result, summary)
	}
	return result, nil
}
