// internal/adapters/mailer/dev.go
package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Dev stands in when no EmailJS credentials are configured. The code is
// surfaced through the log so a developer can complete verification.
// Never meant for production.
type Dev struct {
	log *logrus.Logger
}

func NewDev(log *logrus.Logger) *Dev {
	return &Dev{log: log}
}

func (m *Dev) SendVerificationCode(ctx context.Context, name, email, code string) error {
	m.log.WithFields(logrus.Fields{
		"email": email,
		"code":  code,
	}).Warn("mail relay not configured, verification code logged instead")
	return nil
}
