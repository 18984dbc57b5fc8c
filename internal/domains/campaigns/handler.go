package campaigns

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sangkips/mail-merge-service/internal/handlers"
	"github.com/sangkips/mail-merge-service/internal/ingest"
	"github.com/sangkips/mail-merge-service/internal/mailer"
)

type Handler struct {
	svc       *Service
	maxMemory int64
}

func NewHandler(transport mailer.Transport, from string, recorder DeliveryRecorder, maxMemory int64) *Handler {
	return &Handler{
		svc:       NewService(transport, from, recorder),
		maxMemory: maxMemory,
	}
}

func (h *Handler) RegisterCampaignRoutes(r chi.Router) {
	r.Post("/", h.runCampaign)
	r.Post("/preview", h.previewCampaign)
}

// requestError carries the status and code to report for a bad upload.
type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) *requestError {
	return &requestError{status: http.StatusBadRequest, code: code, message: message}
}

func respondWithRequestError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		handlers.RespondWithError(w, reqErr.status, reqErr.code, reqErr.message)
		return
	}
	handlers.RespondWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

func (h *Handler) runCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.parseCampaign(r)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	// A campaign always runs to the end of the list, even if the client goes away.
	result, err := h.svc.Run(context.WithoutCancel(r.Context()), campaign)
	if err != nil {
		if errors.Is(err, ErrNoRecipients) {
			handlers.RespondWithError(w, http.StatusBadRequest, "NO_RECIPIENTS", "Recipient list contains no recipients")
			return
		}
		handlers.RespondWithError(w, http.StatusInternalServerError, "CAMPAIGN_SEND_FAILED", "Failed to send campaign: "+err.Error())
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) previewCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.parseCampaign(r)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	index := 0
	if v := r.FormValue("index"); v != "" {
		index, err = strconv.Atoi(v)
		if err != nil {
			handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_INDEX", "index must be an integer")
			return
		}
	}

	preview, err := h.svc.Preview(campaign, index)
	if err != nil {
		if errors.Is(err, ErrNoRecipients) {
			handlers.RespondWithError(w, http.StatusBadRequest, "NO_RECIPIENTS", "Recipient list contains no recipients")
			return
		}
		handlers.RespondWithError(w, http.StatusInternalServerError, "PREVIEW_FAILED", "Failed to generate preview: "+err.Error())
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, preview)
}

// parseCampaign reads the template, recipients and attachments parts of a
// multipart campaign upload.
func (h *Handler) parseCampaign(r *http.Request) (Campaign, error) {
	var c Campaign

	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		return c, badRequest("INVALID_REQUEST", "Request must be multipart/form-data: "+err.Error())
	}

	tmplFile, tmplHeader, err := r.FormFile("template")
	if err != nil {
		return c, badRequest("MISSING_FILE", "template file is required")
	}
	defer tmplFile.Close()

	c.Template, err = ingest.ParseTemplate(tmplHeader.Filename, tmplFile)
	if err != nil {
		return c, fileError(err)
	}

	recFile, recHeader, err := r.FormFile("recipients")
	if err != nil {
		return c, badRequest("MISSING_FILE", "recipients file is required")
	}
	defer recFile.Close()

	c.Recipients, err = ingest.ParseRecipients(recHeader.Filename, recFile)
	if err != nil {
		return c, fileError(err)
	}

	for _, fh := range r.MultipartForm.File["attachments"] {
		att, err := ingest.ReadAttachment(fh)
		if err != nil {
			return c, badRequest("INVALID_FILE", err.Error())
		}
		c.Attachments = append(c.Attachments, att)
	}

	return c, nil
}

func fileError(err error) error {
	if errors.Is(err, ingest.ErrUnsupportedFormat) {
		return badRequest("UNSUPPORTED_FORMAT", err.Error())
	}
	return badRequest("INVALID_FILE", err.Error())
}
