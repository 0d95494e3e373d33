package push

import (
	"context"

	"albumserver/sharing"

	"go.uber.org/multierr"
)

// Fanout delivers a notice through every channel, one failing channel does not stop the others
type Fanout []sharing.Notifier

func (f Fanout) SendInvitationNotice(ctx context.Context, notice sharing.InvitationNotice) error {
	var err error
	for _, n := range f {
		err = multierr.Append(err, n.SendInvitationNotice(ctx, notice))
	}
	return err
}
