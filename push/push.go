package push

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	NotificationTypeInvitation = "invitation"
)

type Notification struct {
	Type       string            `json:"type"`
	UserTokens []string          `json:"user_tokens" binding:"required"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Data       map[string]string `json:"data"`
}

// Client talks to the push server, which relays notifications to devices
type Client struct {
	server string
	http   *http.Client
}

func NewClient(server string) *Client {
	return &Client{
		server: server,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Send(ctx context.Context, notification *Notification) error {
	buf := bytes.Buffer{}
	if err := json.NewEncoder(&buf).Encode(notification); err != nil {
		return errors.Wrap(err, "encode notification")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/send", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "call push server")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Errorf("push server status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
