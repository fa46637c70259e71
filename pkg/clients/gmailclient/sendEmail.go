package gmailclient

import (
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/api/gmail/v1"
)

// sendInterval spaces outgoing messages so a bulk announcement to the whole
// roster stays under the Gmail API per-user rate limit.
const sendInterval = 3 * time.Second

// SendEmail sends a plain-text message through the authenticated account.
func (c *Client) SendEmail(to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	c.throttle()

	raw := base64.URLEncoding.EncodeToString([]byte(
		fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", to, subject, body)))

	if _, err := c.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Do(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	c.lastSendTime = time.Now()
	return nil
}

// throttle sleeps until sendInterval has passed since the previous send.
// Callers hold sendMutex.
func (c *Client) throttle() {
	if c.lastSendTime.IsZero() {
		return
	}
	if elapsed := time.Since(c.lastSendTime); elapsed < sendInterval {
		time.Sleep(sendInterval - elapsed)
	}
}
