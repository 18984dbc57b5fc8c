package mailer

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LogTransport writes messages to the log instead of sending them. It is
// used for dry runs and local development.
type LogTransport struct {
	failureRate float64
}

// NewLogTransport creates a log transport that fails the given fraction of sends.
func NewLogTransport(failureRate float64) *LogTransport {
	return &LogTransport{failureRate: failureRate}
}

// Send logs msg and returns a generated id.
func (t *LogTransport) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.failureRate > 0 && rand.Float64() < t.failureRate {
		return "", fmt.Errorf("log transport: simulated failure delivering to %s", msg.To)
	}

	id := fmt.Sprintf("log-%s", uuid.New().String())
	log.Info().
		Str("message_id", id).
		Str("from", msg.From).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Int("attachments", len(msg.Attachments)).
		Msg("email logged")
	return id, nil
}

// Verify always succeeds.
func (t *LogTransport) Verify(ctx context.Context) error {
	return nil
}
