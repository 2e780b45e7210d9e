package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

type Message struct {
	Subject string
	From    string
	To      []string
	Body    string
}

// Mailer delivers outbound messages. Implementations are built once at
// startup and shared by all requests.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	TLSPolicy string
	Timeout   time.Duration
}

type SMTPMailer struct {
	lg        zerolog.Logger
	host      string
	port      int
	user      string
	pass      string
	from      string
	tlsPolicy mail.TLSPolicy
	timeout   time.Duration
}

func NewSMTPMailer(cfg SMTPConfig, lg zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		lg:        lg.With().Str("component", "smtp_mailer").Logger(),
		host:      cfg.Host,
		port:      cfg.Port,
		user:      cfg.Username,
		pass:      cfg.Password,
		from:      cfg.From,
		tlsPolicy: parseTLSPolicy(cfg.TLSPolicy),
		timeout:   cfg.Timeout,
	}
}

func parseTLSPolicy(p string) mail.TLSPolicy {
	switch p {
	case "opportunistic":
		return mail.TLSOpportunistic
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSMandatory
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	from := msg.From
	if from == "" {
		from = m.from
	}

	em := mail.NewMsg()
	if err := em.From(from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := em.To(msg.To...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	em.Subject(msg.Subject)
	em.SetBodyString(mail.TypeTextPlain, msg.Body)

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(m.tlsPolicy),
	}
	if m.timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.timeout))
	}
	if m.user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(m.user), mail.WithPassword(m.pass))
	}

	c, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client init failed: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, em); err != nil {
		m.lg.Error().Err(err).Str("host", m.host).Int("port", m.port).Msg("smtp send failed")
		return fmt.Errorf("smtp send failed: %w", err)
	}

	m.lg.Debug().Strs("to", msg.To).Str("subject", msg.Subject).Msg("smtp send ok")
	return nil
}

// LogMailer records the envelope of every message instead of delivering it.
// The body is never logged because it carries a credential.
type LogMailer struct {
	lg   zerolog.Logger
	from string
}

func NewLogMailer(from string, lg zerolog.Logger) *LogMailer {
	return &LogMailer{
		lg:   lg.With().Str("component", "log_mailer").Logger(),
		from: from,
	}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	from := msg.From
	if from == "" {
		from = m.from
	}
	m.lg.Info().
		Str("from", from).
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.Body)).
		Msg("mail not delivered (log driver)")
	return nil
}
