package service

import (
	"context"
	"fmt"

	"customer-intake-portal/internal/config"
	apperrors "customer-intake-portal/internal/errors"
	"customer-intake-portal/internal/logger"

	"github.com/wneessen/go-mail"
)

// Message represents an email to be sent
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string // plain text
}

// LogNotifier writes notifications to the log instead of sending them.
// It is used when SMTP delivery is disabled.
type LogNotifier struct{}

// NewLogNotifier creates a new log-only notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Send logs the message
func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return apperrors.ErrNoRecipients
	}
	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"from":    msg.From,
		"to":      msg.To,
		"subject": msg.Subject,
	})
	log.Info("[EMAIL] Notification would be sent")
	log.WithField("body", msg.Body).Debug("[EMAIL] Notification body")
	return nil
}

// mailSender is the part of *mail.Client used by SMTPNotifier
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPNotifier delivers notifications through an SMTP relay
type SMTPNotifier struct {
	client mailSender
}

// NewSMTPNotifier creates an SMTP notifier from the SMTP_* settings
func NewSMTPNotifier(cfg *config.Config) (*SMTPNotifier, error) {
	if cfg.SMTPHost == "" {
		return nil, apperrors.ErrSMTPConfigMissing
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(tlsPolicy(cfg.SMTPTLSPolicy)),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPNotifier{client: client}, nil
}

// Send builds the message and delivers it over a fresh SMTP connection
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	m, err := buildMail(msg)
	if err != nil {
		return err
	}
	if err := n.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail to %v: %w", msg.To, err)
	}
	return nil
}

func buildMail(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, apperrors.ErrNoRecipients
	}

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients %v: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

func tlsPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case "none":
		return mail.NoTLS
	case "opportunistic":
		return mail.TLSOpportunistic
	default:
		return mail.TLSMandatory
	}
}
