package deliveries

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/mail-merge-service/internal/domains/deliveries/models"
	"github.com/sangkips/mail-merge-service/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(db models.DBTX) *Handler {
	return &Handler{svc: NewService(NewRepository(db))}
}

// RegisterDeliveryRoutes mounts the delivery log under a campaigns router.
func (h *Handler) RegisterDeliveryRoutes(r chi.Router) {
	r.Get("/{id}/deliveries", h.listDeliveries)
}

func (h *Handler) listDeliveries(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	campaignID, err := uuid.Parse(idStr)
	if err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_CAMPAIGN_ID", "Invalid campaign ID format")
		return
	}

	params := ListDeliveriesParams{Page: 1, PageSize: 20}
	if p, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil {
		params.Page = int32(p)
	}
	if ps, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil {
		params.PageSize = int32(ps)
	}

	response, err := h.svc.ListDeliveries(r.Context(), campaignID, params)
	if err != nil {
		log.Error().Err(err).Str("campaign_id", idStr).Msg("failed to list deliveries")
		handlers.RespondWithError(w, http.StatusInternalServerError, "DELIVERIES_LIST_FAILED", "Failed to list deliveries: "+err.Error())
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, response)
}
