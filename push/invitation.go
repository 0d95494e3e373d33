package push

import (
	"context"

	"albumserver/models"
	"albumserver/sharing"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Pusher notifies recipients that already have an account with a registered device
type Pusher struct {
	client *Client
	db     *gorm.DB
}

func NewPusher(client *Client, db *gorm.DB) *Pusher {
	return &Pusher{client: client, db: db}
}

func (p *Pusher) SendInvitationNotice(ctx context.Context, notice sharing.InvitationNotice) error {
	receiver, err := models.FindUserByEmail(p.db.WithContext(ctx), notice.RecipientEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // not registered yet, email is the only channel
	}
	if err != nil {
		return errors.Wrap(err, "look up recipient")
	}
	if receiver.PushToken == "" {
		return nil
	}
	inviter := notice.InviterName
	if inviter == "" {
		inviter = "Someone"
	}
	return p.client.Send(ctx, &Notification{
		Type:       NotificationTypeInvitation,
		UserTokens: []string{receiver.PushToken},
		Title:      "Album \"" + notice.AlbumName + "\"",
		Body:       inviter + " invited you as " + roleName(notice.Role),
		Data: map[string]string{
			"type": NotificationTypeInvitation,
			"url":  notice.AcceptURL,
		},
	})
}

func roleName(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "an admin"
	case models.RoleContributor:
		return "a contributor"
	default:
		return "a viewer"
	}
}
