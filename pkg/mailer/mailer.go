package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

// Mailer sends transactional email through an HTTP mail API. All sends are
// fire-and-forget from the caller's perspective; failures are logged only.
type Mailer struct {
	cfg        utils.EmailConfig
	httpClient *http.Client
	log        *zap.Logger
}

type mailPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func NewMailer(cfg utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With(zap.String("component", "mailer")),
	}
}

// SendWelcome greets a newly registered user
func (m *Mailer) SendWelcome(name, email string) {
	html := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to the family! We are glad to have you on board.</p>", name)
	m.send(name, email, "Welcome to Toursky!", html)
}

// SendPasswordReset delivers a reset link with the token
func (m *Mailer) SendPasswordReset(name, email, resetURL string) {
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Forgot your password? Submit a new one here (valid for 10 minutes):</p><p><a href=%q>%s</a></p><p>If you didn't request this, please ignore this email.</p>",
		name, resetURL, resetURL,
	)
	m.send(name, email, "Your password reset token (valid for only 10 minutes)", html)
}

func (m *Mailer) send(toName, toEmail, subject, htmlContent string) {
	if m.cfg.APIKey == "" || m.cfg.SenderEmail == "" {
		m.log.Warn("Mailer not configured, skipping email send",
			zap.String("to", toEmail),
			zap.String("subject", subject),
		)
		return
	}

	payload := mailPayload{
		Sender:      map[string]string{"name": m.cfg.SenderName, "email": m.cfg.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		m.log.Error("Failed to marshal email payload", zap.Error(err))
		return
	}

	req, err := http.NewRequest(http.MethodPost, m.cfg.BaseURL+"/v3/smtp/email", bytes.NewBuffer(body))
	if err != nil {
		m.log.Error("Failed to create email request", zap.Error(err))
		return
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", m.cfg.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", toEmail),
			zap.String("subject", subject),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		m.log.Error("Mail API returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
			zap.String("to", toEmail),
		)
		return
	}

	m.log.Info("Email sent",
		zap.String("to", toEmail),
		zap.String("subject", subject),
	)
}
