package emails

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches the Brevo API v3 transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoContact      `json:"sender"`
	To          []BrevoContact    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	ReplyTo     *BrevoContact     `json:"replyTo,omitempty"`
	Attachment  []BrevoAttachment `json:"attachment,omitempty"`
}

type BrevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// BrevoAttachment carries base64 file content.
type BrevoAttachment struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type Attachment struct {
	Name    string
	Content []byte
}

// Message is one outgoing email.
type Message struct {
	ToEmail     string
	ToName      string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// BrevoClient sends email through the Brevo (Sendinblue) API.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	// Endpoint overrides the Brevo URL in tests.
	Endpoint string
	Client   *http.Client
}

var _ Sender = (*BrevoClient)(nil)

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return CompanyEmail
}

func (c *BrevoClient) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return brevoAPI
}

func (c *BrevoClient) Send(ctx context.Context, m Message) error {
	if c.APIKey == "" {
		return fmt.Errorf("brevo api key not configured")
	}
	body := BrevoSendRequest{
		Sender:      BrevoContact{Email: c.from(), Name: CompanyName},
		To:          []BrevoContact{{Email: m.ToEmail, Name: m.ToName}},
		Subject:     m.Subject,
		HTMLContent: m.HTML,
		ReplyTo:     &BrevoContact{Email: CompanyEmail, Name: CompanyName},
	}
	for _, a := range m.Attachments {
		body.Attachment = append(body.Attachment, BrevoAttachment{
			Content: base64.StdEncoding.EncodeToString(a.Content),
			Name:    a.Name,
		})
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}
