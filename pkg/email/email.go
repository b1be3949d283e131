package email

import (
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"
)

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// LoadSMTPConfigFromEnv loads SMTP configuration from environment variables
func LoadSMTPConfigFromEnv() (*SMTPConfig, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	sender := os.Getenv("SMTP_SENDER_EMAIL")

	if host == "" || portStr == "" || sender == "" {
		return nil, fmt.Errorf("SMTP_HOST, SMTP_PORT, and SMTP_SENDER_EMAIL must be set")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	return &SMTPConfig{
		Host:     host,
		Port:     port,
		Username: username, // Username can be empty for some SMTP servers
		Password: password, // Password can be empty for some SMTP servers
		Sender:   sender,
	}, nil
}

// Sender delivers notification mail. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

type smtpSender struct {
	config *SMTPConfig
}

// NewSMTPSender builds a Sender from environment configuration.
func NewSMTPSender() (Sender, error) {
	config, err := LoadSMTPConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load SMTP config: %w", err)
	}
	return &smtpSender{config: config}, nil
}

// Send sends an HTML mail to the given recipients.
func (s *smtpSender) Send(to []string, subject, htmlBody string) error {
	body := fmt.Sprintf(`
<html>
<body>
%s
<p><small>(This is an automated notification, please do not reply.)</small></p>
</body>
</html>
`, htmlBody)

	// Construct email message with CRLF line endings
	// and correct Content-Type header
	msg := []byte(strings.Join([]string{
		"To: " + strings.Join(to, ", "),
		"From: " + s.config.Sender,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n"))

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if err := smtp.SendMail(addr, auth, s.config.Sender, to, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
