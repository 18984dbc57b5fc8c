package emails

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sangkips/mail-merge-service/internal/handlers"
	"github.com/sangkips/mail-merge-service/internal/ingest"
	"github.com/sangkips/mail-merge-service/internal/mailer"
)

type Handler struct {
	svc       *Service
	maxMemory int64
}

func NewHandler(transport mailer.Transport, from string, maxMemory int64) *Handler {
	return &Handler{
		svc:       NewService(transport, from),
		maxMemory: maxMemory,
	}
}

func (h *Handler) RegisterEmailRoutes(r chi.Router) {
	r.Post("/send-email", h.sendEmail)
}

func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		handlers.RespondWithSendFailure(w, err, "request must be multipart/form-data")
		return
	}

	req := SendEmailRequest{
		To:      r.FormValue("to"),
		Subject: r.FormValue("subject"),
		HTML:    r.FormValue("html"),
	}

	for _, fh := range r.MultipartForm.File["attachments"] {
		att, err := ingest.ReadAttachment(fh)
		if err != nil {
			handlers.RespondWithSendFailure(w, err, "")
			return
		}
		req.Attachments = append(req.Attachments, att)
	}

	messageID, err := h.svc.SendEmail(r.Context(), req)
	if err != nil {
		handlers.RespondWithSendFailure(w, err, mailer.Details(err))
		return
	}

	handlers.RespondWithSendSuccess(w, messageID)
}
