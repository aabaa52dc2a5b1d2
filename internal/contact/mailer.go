package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Mailer delivers a built message
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPConfig describes the outgoing relay
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS, usually port 465
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPMailer sends through an SMTP relay. A connection is opened per
// message.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a mailer. Port defaults to 587.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPMailer{cfg: cfg}
}

// Send implements Mailer
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	mm, err := toMsg(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.options()...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send contact mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(m.cfg.Timeout),
	}
	if m.cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

func toMsg(msg *Message) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := mm.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	if err := mm.ReplyTo(msg.ReplyTo); err != nil {
		return nil, fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
	}
	mm.Subject(msg.Subject)
	mm.SetMessageIDWithValue(msg.ID)
	mm.SetDate()
	mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	mm.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return mm, nil
}
