package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const createDelivery = `-- name: CreateDelivery :one
INSERT INTO deliveries (campaign_id, recipient_index, recipient, status, provider_message_id, last_error, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, campaign_id, recipient_index, recipient, status, provider_message_id, last_error, sent_at, created_at
`

type CreateDeliveryParams struct {
	CampaignID        uuid.UUID      `json:"campaign_id"`
	RecipientIndex    int32          `json:"recipient_index"`
	Recipient         string         `json:"recipient"`
	Status            string         `json:"status"`
	ProviderMessageID sql.NullString `json:"provider_message_id"`
	LastError         sql.NullString `json:"last_error"`
	SentAt            time.Time      `json:"sent_at"`
}

func (q *Queries) CreateDelivery(ctx context.Context, arg CreateDeliveryParams) (Delivery, error) {
	row := q.db.QueryRowContext(ctx, createDelivery,
		arg.CampaignID,
		arg.RecipientIndex,
		arg.Recipient,
		arg.Status,
		arg.ProviderMessageID,
		arg.LastError,
		arg.SentAt,
	)
	var i Delivery
	err := row.Scan(
		&i.ID,
		&i.CampaignID,
		&i.RecipientIndex,
		&i.Recipient,
		&i.Status,
		&i.ProviderMessageID,
		&i.LastError,
		&i.SentAt,
		&i.CreatedAt,
	)
	return i, err
}

const listDeliveriesByCampaign = `-- name: ListDeliveriesByCampaign :many
SELECT id, campaign_id, recipient_index, recipient, status, provider_message_id, last_error, sent_at, created_at
FROM deliveries
WHERE campaign_id = $1
ORDER BY recipient_index, id
LIMIT $2 OFFSET $3
`

type ListDeliveriesByCampaignParams struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Limit      int32     `json:"limit"`
	Offset     int32     `json:"offset"`
}

func (q *Queries) ListDeliveriesByCampaign(ctx context.Context, arg ListDeliveriesByCampaignParams) ([]Delivery, error) {
	rows, err := q.db.QueryContext(ctx, listDeliveriesByCampaign, arg.CampaignID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Delivery{}
	for rows.Next() {
		var i Delivery
		if err := rows.Scan(
			&i.ID,
			&i.CampaignID,
			&i.RecipientIndex,
			&i.Recipient,
			&i.Status,
			&i.ProviderMessageID,
			&i.LastError,
			&i.SentAt,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getDeliveryStats = `-- name: GetDeliveryStats :one
SELECT
    COUNT(*) AS total,
    COUNT(*) FILTER (WHERE status = 'sent') AS sent,
    COUNT(*) FILTER (WHERE status = 'failed') AS failed
FROM deliveries
WHERE campaign_id = $1
`

type GetDeliveryStatsRow struct {
	Total  int64 `json:"total"`
	Sent   int64 `json:"sent"`
	Failed int64 `json:"failed"`
}

func (q *Queries) GetDeliveryStats(ctx context.Context, campaignID uuid.UUID) (GetDeliveryStatsRow, error) {
	row := q.db.QueryRowContext(ctx, getDeliveryStats, campaignID)
	var i GetDeliveryStatsRow
	err := row.Scan(&i.Total, &i.Sent, &i.Failed)
	return i, err
}
