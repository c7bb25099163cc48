// internal/adapters/mailer/emailjs.go
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends the verification code through the EmailJS template
// relay. The template receives to_name, to_email and verification_code.
type EmailJS struct {
	httpClient *http.Client
	serviceID  string
	templateID string
	publicKey  string
}

func NewEmailJS(serviceID, templateID, publicKey string) *EmailJS {
	return &EmailJS{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJS) SendVerificationCode(ctx context.Context, name, email, code string) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:  m.serviceID,
		TemplateID: m.templateID,
		UserID:     m.publicKey,
		TemplateParams: map[string]string{
			"to_name":           name,
			"to_email":          email,
			"verification_code": code,
		},
	})
	if err != nil {
		return errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, emailJSEndpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "send mail")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("emailjs: status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
