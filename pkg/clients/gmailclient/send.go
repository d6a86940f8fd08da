package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/gmail/v1"
)

// EmailInterval is the minimum gap between two sends, to stay inside Gmail API rate limits
const EmailInterval = 3 * time.Second

func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(EmailInterval), 1)
}

// SendEmail sends a plain text email, waiting for the rate limiter first
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for send slot: %w", err)
	}

	gmailMessage := &gmail.Message{
		Raw: EncodeMessage(c.from, to, subject, body),
	}

	_, err := c.service.Users.Messages.Send(c.userID, gmailMessage).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// EncodeMessage builds an RFC 2822 message and encodes it the way the Gmail API expects
func EncodeMessage(from, to, subject, body string) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
