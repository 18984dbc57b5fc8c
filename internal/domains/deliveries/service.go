package deliveries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mail-merge-service/internal/domains/deliveries/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListDeliveriesParams struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

type Pagination struct {
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int32 `json:"total_pages"`
}

type DeliveryStats struct {
	Total  int64 `json:"total"`
	Sent   int64 `json:"sent"`
	Failed int64 `json:"failed"`
}

// DeliveryResponse is the API representation of a logged delivery
type DeliveryResponse struct {
	RecipientIndex    int32     `json:"recipient_index"`
	Recipient         string    `json:"recipient"`
	Status            string    `json:"status"`
	ProviderMessageID *string   `json:"provider_message_id,omitempty"`
	LastError         *string   `json:"last_error,omitempty"`
	SentAt            time.Time `json:"sent_at"`
}

type ListDeliveriesResponse struct {
	CampaignID uuid.UUID          `json:"campaign_id"`
	Stats      DeliveryStats      `json:"stats"`
	Data       []DeliveryResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

func toDeliveryResponse(d models.Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		RecipientIndex: d.RecipientIndex,
		Recipient:      d.Recipient,
		Status:         d.Status,
		SentAt:         d.SentAt,
	}
	if d.ProviderMessageID.Valid {
		resp.ProviderMessageID = &d.ProviderMessageID.String
	}
	if d.LastError.Valid {
		resp.LastError = &d.LastError.String
	}
	return resp
}

// ListDeliveries returns one page of a campaign's delivery log with totals.
func (s *Service) ListDeliveries(ctx context.Context, campaignID uuid.UUID, params ListDeliveriesParams) (*ListDeliveriesResponse, error) {
	// Set defaults
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	stats, err := s.repo.GetDeliveryStats(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListDeliveriesByCampaign(ctx, models.ListDeliveriesByCampaignParams{
		CampaignID: campaignID,
		Limit:      params.PageSize,
		Offset:     (params.Page - 1) * params.PageSize,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int32(0)
	if stats.Total > 0 {
		totalPages = int32((stats.Total + int64(params.PageSize) - 1) / int64(params.PageSize))
	}

	data := make([]DeliveryResponse, len(rows))
	for i, row := range rows {
		data[i] = toDeliveryResponse(row)
	}

	return &ListDeliveriesResponse{
		CampaignID: campaignID,
		Stats: DeliveryStats{
			Total:  stats.Total,
			Sent:   stats.Sent,
			Failed: stats.Failed,
		},
		Data: data,
		Pagination: Pagination{
			Page:       params.Page,
			PageSize:   params.PageSize,
			TotalCount: stats.Total,
			TotalPages: totalPages,
		},
	}, nil
}
