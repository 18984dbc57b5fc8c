package mailer

import "time"

// Security selects how the SMTP connection is protected.
type Security string

const (
	SecurityStartTLS Security = "starttls"
	SecurityTLS      Security = "tls"
	SecurityNone     Security = "none"
)

// ParseSecurity maps a configuration value to a Security mode.
func ParseSecurity(s string) (Security, bool) {
	switch Security(s) {
	case SecurityStartTLS, SecurityTLS, SecurityNone:
		return Security(s), true
	case "":
		return SecurityStartTLS, true
	}
	return "", false
}

// SMTPOptions holds the settings of an SMTP transport.
type SMTPOptions struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Security   Security
	SkipVerify bool
	Timeout    time.Duration
}

type Option func(*SMTPOptions)

// WithHost sets the relay host.
func WithHost(host string) Option {
	return func(o *SMTPOptions) {
		o.Host = host
	}
}

// WithPort sets the relay port.
func WithPort(port int) Option {
	return func(o *SMTPOptions) {
		o.Port = port
	}
}

// WithCredentials sets the username and password used for SMTP AUTH
func WithCredentials(username, password string) Option {
	return func(o *SMTPOptions) {
		o.Username = username
		o.Password = password
	}
}

// WithFrom sets the default sender address.
func WithFrom(from string) Option {
	return func(o *SMTPOptions) {
		o.From = from
	}
}

// WithSecurity sets the transport security mode.
func WithSecurity(s Security) Option {
	return func(o *SMTPOptions) {
		o.Security = s
	}
}

// WithSkipVerify disables certificate verification.
func WithSkipVerify(skip bool) Option {
	return func(o *SMTPOptions) {
		o.SkipVerify = skip
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *SMTPOptions) {
		o.Timeout = d
	}
}
