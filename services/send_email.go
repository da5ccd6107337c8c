package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer sends transactional email through the Resend API. A zero-value
// Mailer is unconfigured and refuses to send.
type Mailer struct {
	apiKey    string
	fromEmail string
	endpoint  string
	client    *http.Client
}

func NewMailer(apiKey, fromEmail string) *Mailer {
	return &Mailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		endpoint:  resendEndpoint,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether the mailer has the credentials it needs.
func (m *Mailer) Configured() bool {
	return m != nil && m.apiKey != "" && m.fromEmail != ""
}

// Send relays a plain-text email to the recipients via Resend. replyTo may
// be empty.
func (m *Mailer) Send(subject, body, replyTo string, recipients []string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer is not configured: RESEND_API_KEY and RESEND_FROM_EMAIL are required")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    m.fromEmail,
		To:      recipients,
		ReplyTo: replyTo,
		Subject: subject,
		Text:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
