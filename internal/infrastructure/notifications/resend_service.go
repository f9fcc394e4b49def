package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/EpicVN/ecommerce-auth/domain"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendServiceImpl implements domain.NotificationService over the Resend
// transactional email API.
type ResendServiceImpl struct {
	apiKey string
	from   string
	client *http.Client
}

// NewResendService creates a new Resend email service
func NewResendService(apiKey, from string) domain.NotificationService {
	return &ResendServiceImpl{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type resendMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendOTPEmail implements domain.NotificationService
func (r *ResendServiceImpl) SendOTPEmail(ctx context.Context, email, code string) error {
	// If credentials are not configured, log instead of sending
	if r.apiKey == "" {
		log.Printf("[MOCK EMAIL] To: %s, Code: %s", email, code)
		return nil
	}

	msg := resendMessage{
		From:    r.from,
		To:      []string{email},
		Subject: "Your verification code",
		HTML:    fmt.Sprintf("<strong>%s</strong>", code),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	return nil
}
