package emails

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/mail-merge-service/internal/ingest"
	"github.com/sangkips/mail-merge-service/internal/mailer"
)

type Service struct {
	transport mailer.Transport
	from      string
}

func NewService(transport mailer.Transport, from string) *Service {
	return &Service{
		transport: transport,
		from:      from,
	}
}

type SendEmailRequest struct {
	To          string
	Subject     string
	HTML        string
	Attachments []ingest.Attachment
}

// SendEmail forwards one already-rendered message to the transport.
func (s *Service) SendEmail(ctx context.Context, req SendEmailRequest) (string, error) {
	log.Info().
		Str("to", req.To).
		Str("subject", req.Subject).
		Int("attachments", len(req.Attachments)).
		Msg("received email request")

	messageID, err := s.transport.Send(ctx, mailer.Message{
		From:        s.from,
		To:          req.To,
		Subject:     req.Subject,
		HTML:        req.HTML,
		Attachments: req.Attachments,
	})
	if err != nil {
		log.Error().Err(err).Str("to", req.To).Msg("error sending email")
		return "", err
	}

	log.Info().Str("message_id", messageID).Msg("email sent successfully")
	return messageID, nil
}
