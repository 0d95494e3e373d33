package push

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"albumserver/sharing"

	"github.com/pkg/errors"
)

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends invitation emails through an SMTP server
type Mailer struct {
	cfg  MailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailConfig) (*Mailer, error) {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.From = strings.TrimSpace(cfg.From)
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("email from address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}, nil
}

func (m *Mailer) SendInvitationNotice(_ context.Context, notice sharing.InvitationNotice) error {
	var auth smtp.Auth
	if strings.TrimSpace(m.cfg.Username) != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	return m.send(addr, auth, m.cfg.From, []string{notice.RecipientEmail}, invitationMessage(m.cfg.From, notice))
}

func invitationMessage(from string, notice sharing.InvitationNotice) []byte {
	inviter := notice.InviterName
	if inviter == "" {
		inviter = "Someone"
	}
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n",
		from, notice.RecipientEmail, fmt.Sprintf("You have been invited to the album %q", notice.AlbumName))

	body := strings.Builder{}
	body.WriteString("Hello,\n\n")
	body.WriteString(fmt.Sprintf("%s invited you to join the album %q as %s.\n", inviter, notice.AlbumName, roleName(notice.Role)))
	body.WriteString("Follow the link below to accept the invitation:\n\n")
	body.WriteString(notice.AcceptURL + "\n\n")
	body.WriteString("The invitation expires in 7 days. If you did not expect this email, you can ignore it.\n")
	return []byte(headers + body.String())
}
