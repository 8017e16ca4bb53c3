// Package mailer sends HTML email through an SMTP relay.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Security modes for the SMTP connection.
const (
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
	SecurityNone     = "none"
)

// Message is a single outgoing HTML email.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTML     string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Options configures the SMTP relay.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string
	Security string
	Timeout  time.Duration
}

// SMTP is a Sender backed by an SMTP relay. A connection is opened per send.
type SMTP struct {
	client *mail.Client
}

var _ Sender = (*SMTP)(nil)

// NewSMTP creates an SMTP sender. No connection is made until Send or Verify.
func NewSMTP(opts Options) (*SMTP, error) {
	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTimeout(opts.Timeout),
	}

	switch opts.Security {
	case SecurityTLS:
		clientOpts = append(clientOpts, mail.WithSSL())
	case SecurityNone:
		clientOpts = append(clientOpts, mail.WithTLSPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if opts.User != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.User),
			mail.WithPassword(opts.Password),
		)
	}

	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: new client: %w", err)
	}
	return &SMTP{client: client}, nil
}

// Send builds msg and delivers it.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m, err := Build(msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", msg.To, err)
	}
	return nil
}

// Verify opens and closes a connection to the relay, authenticating when
// credentials are configured.
func (s *SMTP) Verify(ctx context.Context) error {
	if err := s.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("mailer: verify: %w", err)
	}
	return s.client.Close()
}

// Build converts msg into a go-mail message with an HTML body.
func Build(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if msg.FromName != "" {
		if err := m.FromFormat(msg.FromName, msg.From); err != nil {
			return nil, fmt.Errorf("mailer: from: %w", err)
		}
	} else if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("mailer: from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("mailer: to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
