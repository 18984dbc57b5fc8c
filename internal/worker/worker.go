package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/mail-merge-service/internal/domains/deliveries"
	"github.com/sangkips/mail-merge-service/internal/domains/deliveries/models"
	"github.com/sangkips/mail-merge-service/internal/queue"
)

// Consumer is the source of delivery events.
type Consumer interface {
	Consume() (<-chan amqp091.Delivery, error)
}

// Worker records campaign delivery events in the delivery log.
type Worker struct {
	consumer Consumer
	repo     deliveries.Repository
}

func NewWorker(consumer Consumer, db models.DBTX) *Worker {
	return &Worker{
		consumer: consumer,
		repo:     deliveries.NewRepository(db),
	}
}

func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.consumer.Consume()
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	log.Info().Msg("worker started, waiting for delivery events")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("rabbitMQ channel closed")
			}
			w.processMessage(ctx, d)
		}
	}
}

func (w *Worker) processMessage(ctx context.Context, d amqp091.Delivery) {
	var event queue.DeliveryEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal delivery event")
		d.Reject(false)
		return
	}

	if event.CampaignID == uuid.Nil || (event.Status != queue.StatusSent && event.Status != queue.StatusFailed) {
		log.Error().Str("status", event.Status).Msg("invalid delivery event")
		d.Reject(false)
		return
	}

	_, err := w.repo.CreateDelivery(ctx, models.CreateDeliveryParams{
		CampaignID:        event.CampaignID,
		RecipientIndex:    int32(event.RecipientIndex),
		Recipient:         event.To,
		Status:            event.Status,
		ProviderMessageID: nullString(event.MessageID),
		LastError:         nullString(event.Error),
		SentAt:            event.SentAt,
	})
	if err != nil {
		log.Error().Err(err).
			Str("campaign_id", event.CampaignID.String()).
			Int("recipient_index", event.RecipientIndex).
			Msg("failed to record delivery")
		d.Nack(false, true)
		return
	}

	log.Info().
		Str("campaign_id", event.CampaignID.String()).
		Int("recipient_index", event.RecipientIndex).
		Str("status", event.Status).
		Msg("delivery recorded")
	d.Ack(false)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
