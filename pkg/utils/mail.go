package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/mnuddindev/routinely/pkg/logger"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP and app settings, passed in from app config.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	AppURL       string
	FromEmail    string
}

// Enabled reports whether an SMTP host is configured.
func (c EmailConfig) Enabled() bool {
	return c.SMTPHost != ""
}

// Sender delivers a prepared message.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// NewWelcomeMessage builds the mail sent right after sign up.
func NewWelcomeMessage(config EmailConfig, email, firstName string) *gomail.Message {
	journalLink := fmt.Sprintf("%s/journal", config.AppURL)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>Welcome to Routinely, %s!</h1>
  <p>Your account is ready. Browse routines, like the ones you enjoy and plan your next workouts in your journal.</p>
  <p><a href="%s">Open your journal</a></p>
  <p style="font-size: 12px; color: #777;">&copy; %d Routinely</p>
</body>
</html>`, firstName, journalLink, time.Now().Year())

	textBody := fmt.Sprintf(`Hello %s,

Welcome to Routinely! Your account is ready.

Open your journal: %s

The Routinely Team
`, firstName, journalLink)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.FromEmail)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Welcome to Routinely")
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)
	return msg
}

// SendWelcomeEmail sends the welcome mail. A nil sender dials config's SMTP server.
func SendWelcomeEmail(ctx context.Context, config EmailConfig, sender Sender, email, firstName string, log *logger.Logger) error {
	if sender == nil {
		sender = gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword)
	}

	if err := sender.DialAndSend(NewWelcomeMessage(config, email, firstName)); err != nil {
		log.Warn(ctx).WithFields("email", email, "error", err).Logs("Failed to send welcome email")
		return WrapError(err, ErrInternalServerError.Code, "Failed to send welcome email")
	}

	log.Info(ctx).WithFields("email", email).Logs("Welcome email sent")
	return nil
}
