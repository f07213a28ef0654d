package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

// Message is a rendered HTML email
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a rendered email
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// SMTPSender sends mail through an authenticated SMTP relay
type SMTPSender struct {
	config EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(config EmailConfig) *SMTPSender {
	return &SMTPSender{config: config, send: smtp.SendMail}
}

// Send sends an email using SMTP
func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := s.send(addr, auth, s.config.FromEmail, msg.To, s.buildHTMLEmail(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *SMTPSender) buildHTMLEmail(msg Message) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		strings.Join(msg.To, ", "),
		msg.Subject,
	)

	return []byte(headers + msg.HTML)
}

// SESSender sends mail through the SESv2 API
type SESSender struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
}

// NewSESSender creates an SES sender from a loaded AWS config
func NewSESSender(cfg aws.Config, fromName, fromEmail string) *SESSender {
	return &SESSender{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (e *SESSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	from := e.fromEmail
	if e.fromName != "" {
		from = fmt.Sprintf("%s <%s>", e.fromName, e.fromEmail)
	}
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &sestypes.Destination{ToAddresses: msg.To},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
				Body:    &sestypes.Body{Html: &sestypes.Content{Data: aws.String(msg.HTML)}},
			},
		},
	}
	if _, err := e.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogSender only logs what would have been sent. Used in development.
type LogSender struct {
	Logger zerolog.Logger
}

func (l LogSender) Send(_ context.Context, msg Message) error {
	l.Logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email suppressed")
	return nil
}
