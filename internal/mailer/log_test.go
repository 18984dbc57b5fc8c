package mailer

import (
	"context"
	"strings"
	"testing"
)

var _ Transport = (*LogTransport)(nil)
var _ Transport = (*SMTPTransport)(nil)

// TestLogTransport_Send tests the generated id
func TestLogTransport_Send(t *testing.T) {
	tr := NewLogTransport(0)

	id, err := tr.Send(context.Background(), Message{To: "ana@example.com", Subject: "Hi"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(id, "log-") {
		t.Errorf("unexpected id %q", id)
	}
	if err := tr.Verify(context.Background()); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

// TestLogTransport_AlwaysFails tests a failure rate of one
func TestLogTransport_AlwaysFails(t *testing.T) {
	tr := NewLogTransport(1)

	if _, err := tr.Send(context.Background(), Message{To: "ana@example.com"}); err == nil {
		t.Error("Expected simulated failure")
	}
}
