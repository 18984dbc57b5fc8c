package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/mail.v2"
)

// SMTPTransport sends messages through an SMTP relay, one connection per message.
type SMTPTransport struct {
	opts SMTPOptions
}

// NewSMTPTransport creates an SMTP transport. Host is required.
func NewSMTPTransport(opts ...Option) (*SMTPTransport, error) {
	o := SMTPOptions{
		Port:     587,
		Security: SecurityStartTLS,
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if o.From == "" {
		o.From = o.Username
	}

	return &SMTPTransport{opts: o}, nil
}

func (t *SMTPTransport) dialer() *gomail.Dialer {
	d := gomail.NewDialer(t.opts.Host, t.opts.Port, t.opts.Username, t.opts.Password)
	d.Timeout = t.opts.Timeout
	d.TLSConfig = &tls.Config{
		ServerName:         t.opts.Host,
		InsecureSkipVerify: t.opts.SkipVerify,
	}

	switch t.opts.Security {
	case SecurityTLS:
		d.SSL = true
	case SecurityNone:
		d.SSL = false
		d.StartTLSPolicy = gomail.NoStartTLS
	default:
		d.SSL = false
		d.StartTLSPolicy = gomail.MandatoryStartTLS
	}
	return d
}

// buildMessage converts msg to a gomail message carrying messageID.
func (t *SMTPTransport) buildMessage(msg Message, messageID string) *gomail.Message {
	from := msg.From
	if from == "" {
		from = t.opts.From
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		var settings []gomail.FileSetting
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		m.AttachReader(att.Filename, bytes.NewReader(att.Content), settings...)
	}
	return m
}

// Send delivers msg and returns its Message-ID.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	from := msg.From
	if from == "" {
		from = t.opts.From
	}
	messageID := newMessageID(from)

	if err := t.dialer().DialAndSend(t.buildMessage(msg, messageID)); err != nil {
		return "", fmt.Errorf("failed to send email via smtp: %w", err)
	}

	log.Debug().Str("to", msg.To).Str("message_id", messageID).Msg("email handed to smtp relay")
	return messageID, nil
}

// Verify opens and closes a connection to the relay, authenticating if
// credentials are configured.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sc, err := t.dialer().Dial()
	if err != nil {
		return fmt.Errorf("smtp verify failed: %w", err)
	}
	return sc.Close()
}
