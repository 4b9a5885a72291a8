package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/apex-fest/backend/internal/models"
)

// DefaultTimeout bounds one webhook delivery attempt.
const DefaultTimeout = 10 * time.Second

// payload is the body the sheet automation script expects.
type payload struct {
	Action string              `json:"action"`
	Data   models.Registration `json:"data"`
}

// Client delivers registrations to the sheet-automation webhook.
type Client struct {
	url    string
	secret string
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a webhook client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(url, secret string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:    url,
		secret: secret,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool { return c.url != "" }

// Send posts one registration to the webhook with the bearer secret.
func (c *Client) Send(ctx context.Context, reg models.Registration) error {
	if c.url == "" {
		return fmt.Errorf("webhook url not configured")
	}

	body, err := json.Marshal(payload{Action: "addRegistration", Data: reg})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook failed: %s", resp.Status)
	}

	c.logger.Info("sheet update triggered", zap.String("registration_id", reg.RegistrationID))
	return nil
}
