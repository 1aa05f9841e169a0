package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MailerClient talks to a transactional email HTTP API. Sending is optional:
// with no API key configured every Send is a logged no-op at the call site.
type MailerClient struct {
	baseURL    string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
}

type MailerConfig struct {
	BaseURL string
	APIKey  string
	From    string
	To      string
	Timeout time.Duration
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

func NewMailerClient(cfg MailerConfig) *MailerClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &MailerClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		to:      cfg.To,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (mc *MailerClient) Enabled() bool {
	return mc.apiKey != "" && mc.to != ""
}

// Send delivers one HTML email to the configured host address
func (mc *MailerClient) Send(ctx context.Context, subject, html string) error {
	if !mc.Enabled() {
		return fmt.Errorf("mailer is not configured")
	}

	body, err := json.Marshal(sendEmailRequest{
		From:    mc.from,
		To:      []string{mc.to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mc.baseURL+"/emails", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mc.apiKey)

	resp, err := mc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result sendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode email response: %w", err)
	}

	return nil
}
