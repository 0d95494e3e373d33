// Package sharing implements album membership and invitations: role resolution,
// email and shareable invites, their acceptance, and member management.
//
// The service keeps no mutable state of its own. Everything that needs
// mutual exclusion goes through guarded single-statement updates in the store,
// so any number of instances can serve the same database.
package sharing

import (
	"context"
	"fmt"
	"time"

	"albumserver/models"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Identity is the authenticated caller, as verified by the identity provider
type Identity struct {
	ID    uint64
	Email string
}

// InvitationNotice is handed to the notification collaborator after an email invite is stored
type InvitationNotice struct {
	RecipientEmail string
	InviterName    string
	AlbumName      string
	Role           models.Role
	AcceptURL      string
}

// Notifier delivers invitation notices. Failures are logged, never returned to callers.
type Notifier interface {
	SendInvitationNotice(ctx context.Context, notice InvitationNotice) error
}

type Options struct {
	Notifier          Notifier
	Logger            zerolog.Logger
	AcceptURLTemplate string           // fmt template receiving the token
	Now               func() time.Time // defaults to time.Now
	JoinRequestLimit  int              // per user and window, 0 disables join requests
	JoinRequestWindow time.Duration
}

type Service struct {
	db                *gorm.DB
	notifier          Notifier
	log               zerolog.Logger
	acceptURLTemplate string
	now               func() time.Time
	joinLimit         int
	joinWindow        time.Duration
}

func NewService(db *gorm.DB, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AcceptURLTemplate == "" {
		opts.AcceptURLTemplate = "/w/invite/%s/"
	}
	if opts.JoinRequestWindow <= 0 {
		opts.JoinRequestWindow = time.Hour
	}
	return &Service{
		db:                db,
		notifier:          opts.Notifier,
		log:               opts.Logger.With().Str("component", "sharing").Logger(),
		acceptURLTemplate: opts.AcceptURLTemplate,
		now:               opts.Now,
		joinLimit:         opts.JoinRequestLimit,
		joinWindow:        opts.JoinRequestWindow,
	}
}

// AcceptURL builds the link a recipient follows to accept an invitation
func (s *Service) AcceptURL(token string) string {
	return fmt.Sprintf(s.acceptURLTemplate, token)
}

func (s *Service) unixNow() int64 {
	return s.now().Unix()
}

// loadAlbum fetches an album with its members materialized for role resolution
func (s *Service) loadAlbum(ctx context.Context, albumID uint64) (models.Album, error) {
	album := models.Album{}
	err := s.db.WithContext(ctx).Preload("Members").First(&album, "id = ?", albumID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return album, notFound("album")
	}
	if err != nil {
		return album, storeFailure(err, "load album")
	}
	return album, nil
}

// authorize loads the album and resolves the caller's role on it.
// No relation at all is NotAMember, a role without the capability is Forbidden.
func (s *Service) authorize(ctx context.Context, caller *Identity, albumID uint64, allowed func(models.Role) bool) (models.Album, models.Role, error) {
	if caller == nil || caller.ID == 0 {
		return models.Album{}, models.RoleNone, ErrNotAuthenticated
	}
	album, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return album, models.RoleNone, err
	}
	role := album.AccessList().RoleOf(caller.ID)
	if role == models.RoleNone {
		return album, role, ErrNotAMember
	}
	if !allowed(role) {
		return album, role, ErrForbidden
	}
	return album, role, nil
}

func canInvite(role models.Role) bool {
	return models.CapabilitiesFor(role).CanInviteMembers
}

func canManage(role models.Role) bool {
	return models.CapabilitiesFor(role).CanManageMembers
}

func isAdmin(role models.Role) bool {
	return role == models.RoleAdmin
}

func anyRole(models.Role) bool {
	return true
}

// AccessInfo is the resolved role of a caller for one album
type AccessInfo struct {
	AlbumID      uint64              `json:"album_id"`
	Role         models.Role         `json:"role"`
	IsCreator    bool                `json:"is_creator"`
	Capabilities models.Capabilities `json:"capabilities"`
}

// GetAccess resolves the caller's role and capabilities. Having no relation is not an error.
func (s *Service) GetAccess(ctx context.Context, caller *Identity, albumID uint64) (AccessInfo, error) {
	if caller == nil || caller.ID == 0 {
		return AccessInfo{}, ErrNotAuthenticated
	}
	album, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return AccessInfo{}, err
	}
	role := album.AccessList().RoleOf(caller.ID)
	return AccessInfo{
		AlbumID:      album.ID,
		Role:         role,
		IsCreator:    album.UserID == caller.ID,
		Capabilities: models.CapabilitiesFor(role),
	}, nil
}
