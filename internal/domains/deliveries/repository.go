package deliveries

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/mail-merge-service/internal/domains/deliveries/models"
)

type Repository interface {
	CreateDelivery(ctx context.Context, params models.CreateDeliveryParams) (models.Delivery, error)
	ListDeliveriesByCampaign(ctx context.Context, params models.ListDeliveriesByCampaignParams) ([]models.Delivery, error)
	GetDeliveryStats(ctx context.Context, campaignID uuid.UUID) (models.GetDeliveryStatsRow, error)
}

type repository struct {
	q *models.Queries
}

func NewRepository(db models.DBTX) Repository {
	return &repository{q: models.New(db)}
}

func (r *repository) CreateDelivery(ctx context.Context, params models.CreateDeliveryParams) (models.Delivery, error) {
	return r.q.CreateDelivery(ctx, params)
}

func (r *repository) ListDeliveriesByCampaign(ctx context.Context, params models.ListDeliveriesByCampaignParams) ([]models.Delivery, error) {
	return r.q.ListDeliveriesByCampaign(ctx, params)
}

func (r *repository) GetDeliveryStats(ctx context.Context, campaignID uuid.UUID) (models.GetDeliveryStatsRow, error) {
	return r.q.GetDeliveryStats(ctx, campaignID)
}
