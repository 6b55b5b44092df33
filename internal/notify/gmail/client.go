// Package gmail implements the messenger on the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	ggmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"hiring-backend/internal/notify"
)

// Config holds the Gmail client configuration.
type Config struct {
	// TokenFile is a JSON-serialized oauth2.Token obtained out of band.
	TokenFile string
	// CredentialsJSON is an alternative to TokenFile for service accounts.
	CredentialsJSON []byte
}

// Client sends notifications through the authenticated Gmail account.
type Client struct {
	service *ggmail.Service
}

// NewClient builds the Gmail service from the configured credentials.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption
	switch {
	case cfg.TokenFile != "":
		tok, err := loadToken(cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("gmail: load token: %w", err)
		}
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(tok)))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("gmail: token file or credentials JSON is required")
	}

	service, err := ggmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}
	return &Client{service: service}, nil
}

// Send delivers a plain-text email as the authenticated user.
func (c *Client) Send(ctx context.Context, msg notify.Message) error {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		msg.To, msg.Subject, msg.Body)

	gm := &ggmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}
	if _, err := c.service.Users.Messages.Send("me", gm).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail: send message: %w", err)
	}
	return nil
}

func loadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
