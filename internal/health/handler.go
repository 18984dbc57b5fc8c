package health

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/sangkips/mail-merge-service/internal/handlers"
	"github.com/sangkips/mail-merge-service/internal/mailer"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// mailCheckTTL bounds how often /health dials the mail relay.
const mailCheckTTL = time.Minute

// Pinger is satisfied by the RabbitMQ connection.
type Pinger interface {
	Ping() error
}

type Handler struct {
	db        *sql.DB
	queue     Pinger
	transport mailer.Transport

	mu          sync.Mutex
	mailCheck   Check
	mailChecked time.Time
}

// NewHandler creates a health handler. db and queue are optional; a nil
// dependency is reported as disabled.
func NewHandler(db *sql.DB, queue Pinger, transport mailer.Transport) *Handler {
	return &Handler{
		db:        db,
		queue:     queue,
		transport: transport,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Timestamp time.Time        `json:"timestamp"`
}

// Check represents a single health check
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health performs health checks on the mail transport, database and RabbitMQ
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]Check{
		"mail":     h.checkMail(ctx),
		"database": h.checkDatabase(ctx),
		"queue":    h.checkQueue(),
	}

	overallHealthy := true
	for _, c := range checks {
		if c.Status == statusUnhealthy {
			overallHealthy = false
		}
	}

	status := statusHealthy
	statusCode := http.StatusOK
	if !overallHealthy {
		status = statusUnhealthy
		statusCode = http.StatusServiceUnavailable
	}

	handlers.RespondWithJSON(w, statusCode, HealthResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}

// checkMail verifies the transport can reach its server. The result is
// reused for mailCheckTTL.
func (h *Handler) checkMail(ctx context.Context) Check {
	if h.transport == nil {
		return Check{Status: statusUnhealthy, Message: "mail transport is nil"}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.mailChecked.IsZero() && time.Since(h.mailChecked) < mailCheckTTL {
		return h.mailCheck
	}

	h.mailCheck = Check{Status: statusHealthy, Message: "mail transport is ready"}
	if err := h.transport.Verify(ctx); err != nil {
		h.mailCheck = Check{Status: statusUnhealthy, Message: "mail transport verification failed: " + err.Error()}
	}
	h.mailChecked = time.Now()
	return h.mailCheck
}

// checkDatabase checks if the database is accessible
func (h *Handler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: statusDisabled, Message: "DB_URL not configured"}
	}

	if err := h.db.PingContext(ctx); err != nil {
		return Check{Status: statusUnhealthy, Message: "database connection failed: " + err.Error()}
	}

	var result int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return Check{Status: statusUnhealthy, Message: "database query failed: " + err.Error()}
	}

	return Check{Status: statusHealthy, Message: "database is accessible"}
}

// checkQueue checks if RabbitMQ is accessible
func (h *Handler) checkQueue() Check {
	if h.queue == nil {
		return Check{Status: statusDisabled, Message: "RABBITMQ_URL not configured"}
	}

	if err := h.queue.Ping(); err != nil {
		return Check{Status: statusUnhealthy, Message: "queue connection failed: " + err.Error()}
	}

	return Check{Status: statusHealthy, Message: "queue is accessible"}
}
