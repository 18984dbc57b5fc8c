package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Delivery struct {
	ID                int64          `json:"id"`
	CampaignID        uuid.UUID      `json:"campaign_id"`
	RecipientIndex    int32          `json:"recipient_index"`
	Recipient         string         `json:"recipient"`
	Status            string         `json:"status"`
	ProviderMessageID sql.NullString `json:"provider_message_id"`
	LastError         sql.NullString `json:"last_error"`
	SentAt            time.Time      `json:"sent_at"`
	CreatedAt         time.Time      `json:"created_at"`
}
