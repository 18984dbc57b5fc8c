package campaigns

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/mail-merge-service/internal/ingest"
	"github.com/sangkips/mail-merge-service/internal/mailer"
	"github.com/sangkips/mail-merge-service/internal/merge"
	"github.com/sangkips/mail-merge-service/internal/queue"
)

var ErrNoRecipients = errors.New("no recipients to send to")

// DeliveryRecorder receives the outcome of every campaign send.
type DeliveryRecorder interface {
	PublishDelivery(event queue.DeliveryEvent) error
}

type Service struct {
	transport mailer.Transport
	from      string
	recorder  DeliveryRecorder
}

// NewService creates a campaign service. recorder may be nil.
func NewService(transport mailer.Transport, from string, recorder DeliveryRecorder) *Service {
	return &Service{
		transport: transport,
		from:      from,
		recorder:  recorder,
	}
}

// Campaign is one template sent to a list of recipients with shared attachments.
type Campaign struct {
	ID          uuid.UUID
	Template    merge.Template
	Recipients  []merge.Record
	Attachments []ingest.Attachment
}

type Failure struct {
	Index int    `json:"index"`
	To    string `json:"to"`
	Error string `json:"error"`
}

type Result struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Total      int       `json:"total"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures"`
}

// Run sends one personalized message per recipient, in order. A failed send
// is recorded and the loop moves on. If ctx is done between two recipients,
// Run returns the partial result along with ctx's error; callers that must
// finish the list pass a context that is never cancelled.
func (s *Service) Run(ctx context.Context, c Campaign) (*Result, error) {
	if len(c.Recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	result := &Result{
		CampaignID: c.ID,
		Total:      len(c.Recipients),
		Failures:   []Failure{},
	}

	log.Info().
		Str("campaign_id", c.ID.String()).
		Int("recipients", len(c.Recipients)).
		Int("attachments", len(c.Attachments)).
		Msg("starting campaign")

	for i, record := range c.Recipients {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Str("campaign_id", c.ID.String()).Int("sent", result.Sent).Msg("campaign interrupted")
			return result, err
		}

		rendered := merge.RenderTemplate(c.Template, record)
		to := record.Email()

		messageID, err := s.transport.Send(ctx, mailer.Message{
			From:        s.from,
			To:          to,
			Subject:     rendered.Subject,
			HTML:        rendered.Body,
			Attachments: c.Attachments,
		})

		event := queue.DeliveryEvent{
			CampaignID:     c.ID,
			RecipientIndex: i,
			To:             to,
			SentAt:         time.Now().UTC(),
		}
		if err != nil {
			log.Error().Err(err).Str("campaign_id", c.ID.String()).Str("to", to).Msg("failed to send email")
			result.Failed++
			result.Failures = append(result.Failures, Failure{Index: i, To: to, Error: err.Error()})
			event.Status = queue.StatusFailed
			event.Error = err.Error()
		} else {
			result.Sent++
			event.Status = queue.StatusSent
			event.MessageID = messageID
		}

		s.record(event)
	}

	log.Info().
		Str("campaign_id", c.ID.String()).
		Int("sent", result.Sent).
		Int("total", result.Total).
		Msgf("Successfully sent %d out of %d emails", result.Sent, result.Total)

	return result, nil
}

func (s *Service) record(event queue.DeliveryEvent) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.PublishDelivery(event); err != nil {
		log.Warn().Err(err).Str("campaign_id", event.CampaignID.String()).Int("recipient_index", event.RecipientIndex).Msg("failed to record delivery")
	}
}

type AttachmentSummary struct {
	Name string      `json:"name"`
	Kind ingest.Kind `json:"kind"`
	Size int         `json:"size"`
}

type Preview struct {
	Index         int                 `json:"index"`
	Total         int                 `json:"total"`
	To            string              `json:"to"`
	Subject       string              `json:"subject"`
	Body          string              `json:"body"`
	MissingFields []string            `json:"missing_fields"`
	Attachments   []AttachmentSummary `json:"attachments"`
}

// Preview renders the campaign for the recipient at index. Out of range
// indexes are clamped to the first or last recipient.
func (s *Service) Preview(c Campaign, index int) (*Preview, error) {
	if len(c.Recipients) == 0 {
		return nil, ErrNoRecipients
	}
	index = max(0, min(index, len(c.Recipients)-1))

	record := c.Recipients[index]
	rendered := merge.RenderTemplate(c.Template, record)

	missing := merge.MissingFields(c.Template.Subject, record)
	for _, key := range merge.MissingFields(c.Template.Body, record) {
		if !slices.Contains(missing, key) {
			missing = append(missing, key)
		}
	}

	attachments := make([]AttachmentSummary, 0, len(c.Attachments))
	for _, a := range c.Attachments {
		attachments = append(attachments, AttachmentSummary{
			Name: a.Filename,
			Kind: a.Kind(),
			Size: a.Size(),
		})
	}

	return &Preview{
		Index:         index,
		Total:         len(c.Recipients),
		To:            record.Email(),
		Subject:       rendered.Subject,
		Body:          rendered.Body,
		MissingFields: missing,
		Attachments:   attachments,
	}, nil
}

// Fields lists the placeholders a template references.
func (s *Service) Fields(t merge.Template) []string {
	return t.Fields()
}
