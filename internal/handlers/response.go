package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendResult is the wire format of the send-email endpoint.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   string `json:"details,omitempty"`
}

const noDetails = "No additional details available"

// Send a standardized JSON error response
func RespondWithError(w http.ResponseWriter, statusCode int, code string, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// RespondWithSendSuccess writes {"success":true,"messageId":...}.
func RespondWithSendSuccess(w http.ResponseWriter, messageID string) {
	RespondWithJSON(w, http.StatusOK, SendResult{Success: true, MessageID: messageID})
}

// RespondWithSendFailure writes a 500 with {"success":false,"error":...,"details":...}.
func RespondWithSendFailure(w http.ResponseWriter, err error, details string) {
	if details == "" {
		details = noDetails
	}
	RespondWithJSON(w, http.StatusInternalServerError, SendResult{
		Success: false,
		Error:   err.Error(),
		Details: details,
	})
}
