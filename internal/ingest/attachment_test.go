package ingest

import (
	"strings"
	"testing"
)

// TestClassify tests attachment categories
func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expected    Kind
	}{
		{"photo.png", "image/png", KindImage},
		{"photo.bin", "image/jpeg", KindImage},
		{"report.PDF", "application/pdf", KindDocument},
		{"deck.pptx", "", KindDocument},
		{"sheet.xls", "application/vnd.ms-excel", KindDocument},
		{"notes.txt", "text/plain", KindOther},
		{"archive.zip", "", KindOther},
	}

	for _, tt := range tests {
		if got := Classify(tt.name, tt.contentType); got != tt.expected {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.name, tt.contentType, got, tt.expected)
		}
	}
}

// TestContentTypeFor tests the declared, extension and sniffing fallbacks
func TestContentTypeFor(t *testing.T) {
	if got := ContentTypeFor("a.pdf", "application/x-custom", nil); got != "application/x-custom" {
		t.Errorf("declared type not preferred: %q", got)
	}
	if got := ContentTypeFor("a.xlsx", "", nil); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected xlsx type %q", got)
	}
	if got := ContentTypeFor("logo.svg", "", nil); got != "image/svg+xml" {
		t.Errorf("expected extension lookup image/svg+xml, got %q", got)
	}
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if got := ContentTypeFor("upload", "", png); got != "image/png" {
		t.Errorf("expected sniffed image/png, got %q", got)
	}
}

// TestNewAttachment tests reading an attachment body
func TestNewAttachment(t *testing.T) {
	att, err := NewAttachment("terms.pdf", "", strings.NewReader("%PDF-1.4 test"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if att.ContentType != "application/pdf" || att.Size() != 13 || att.Kind() != KindDocument {
		t.Errorf("unexpected attachment %+v", att)
	}
}
