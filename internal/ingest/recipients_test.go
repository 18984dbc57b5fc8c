package ingest

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sangkips/mail-merge-service/internal/merge"
)

// TestParseRecipients_CSV tests header aliasing, trimming and blank rows
func TestParseRecipients_CSV(t *testing.T) {
	input := "\ufeffFirst Name,Last_Name,Email Address,Company\n" +
		" Ana ,Lee,ana@example.com,Acme\n" +
		",,,\n" +
		"Bo,,bo@example.com\n"

	records, err := ParseRecipients("people.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []merge.Record{
		{"firstname": "Ana", "lastname": "Lee", "email": "ana@example.com", "company": "Acme"},
		{"firstname": "Bo", "lastname": "", "email": "bo@example.com", "company": ""},
	}
	if !reflect.DeepEqual(records, expected) {
		t.Errorf("ParseRecipients() = %v, want %v", records, expected)
	}
}

// TestParseRecipients_Xlsx tests reading recipients from the first sheet
func TestParseRecipients_Xlsx(t *testing.T) {
	data := buildXlsx(t, [][]string{
		{"FNAME", "Mail", "User Name"},
		{"Ana", "ana@example.com", "ana99"},
		{"Bo", "bo@example.com", "bo"},
	})

	records, err := ParseRecipients("people.xlsx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[1].Email() != "bo@example.com" || records[0].Get("username") != "ana99" {
		t.Errorf("unexpected records %v", records)
	}
}

// TestParseRecipients_HeaderOnly tests that a header without rows gives no records
func TestParseRecipients_HeaderOnly(t *testing.T) {
	records, err := ParseRecipients("people.csv", strings.NewReader("email\n"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %v", records)
	}
}

// TestParseRecipients_Unsupported tests rejection of unknown extensions
func TestParseRecipients_Unsupported(t *testing.T) {
	_, err := ParseRecipients("people.json", strings.NewReader("[]"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}
