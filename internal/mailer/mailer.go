package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/mail-merge-service/internal/ingest"
	gomail "gopkg.in/mail.v2"
)

// Message is one outbound email.
type Message struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []ingest.Attachment
}

// Transport delivers messages to a mail relay.
type Transport interface {
	// Send delivers msg and returns the message id assigned to it.
	Send(ctx context.Context, msg Message) (string, error)
	// Verify checks that the relay is reachable with the configured settings.
	Verify(ctx context.Context) error
}

// Details extracts the server response from a transport error, if any.
// gomail.SendError does not unwrap, so its Cause is followed explicitly.
func Details(err error) string {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return fmt.Sprintf("%d %s", tpErr.Code, tpErr.Msg)
	}
	var sendErr *gomail.SendError
	if errors.As(err, &sendErr) && sendErr.Cause != nil {
		return Details(sendErr.Cause)
	}
	return ""
}

// newMessageID builds an RFC 5322 message id in the sender's domain.
func newMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.Trim(from[at+1:], "> ")
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
