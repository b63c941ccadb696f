package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/logger"

	"github.com/rs/zerolog"
)

// Mailer is the delivery seam; the rest of the system only ever asks
// for a password-reset mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

type SMTPMailer struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: logger.Get()}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", m.cfg.Mail.FrontendURL, token)

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Password Reset Request\r\n\r\n"+
		"You requested a password reset for your account.\r\n\r\n"+
		"Please open the following link to reset your password:\r\n%s\r\n\r\n"+
		"This link will expire in 7 days.\r\n\r\n"+
		"If you didn't request this password reset, please ignore this email.\r\n",
		m.cfg.Mail.From, email, resetURL)

	addr := fmt.Sprintf("%s:%d", m.cfg.Mail.Host, m.cfg.Mail.Port)
	var auth smtp.Auth
	if m.cfg.Mail.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Mail.Username, m.cfg.Mail.Password, m.cfg.Mail.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.Mail.From, []string{email}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	m.log.Info().Str("email", email).Msg("Password reset email sent")
	return nil
}
