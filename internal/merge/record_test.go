package merge

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

// TestNormalizeRecord_CanonicalKeysAndTrimmedValues tests the basic normalization
func TestNormalizeRecord_CanonicalKeysAndTrimmedValues(t *testing.T) {
	raw := map[string]*string{
		"First Name":    strPtr(" Ana "),
		"Email Address": strPtr("a@b.com"),
	}

	expected := Record{"firstname": "Ana", "email": "a@b.com"}
	got := NormalizeRecord(raw)

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("NormalizeRecord() = %v, want %v", got, expected)
	}
}

// TestNormalizeRecord_NilValues tests that absent values become empty strings
func TestNormalizeRecord_NilValues(t *testing.T) {
	raw := map[string]*string{
		"Company": nil,
		"FNAME":   strPtr("Bo"),
	}

	got := NormalizeRecord(raw)

	v, ok := got.Lookup("company")
	if !ok {
		t.Fatal("expected company key to be present")
	}
	if v != "" {
		t.Errorf("expected empty company, got %q", v)
	}
	if got.Get("First Name") != "Bo" {
		t.Errorf("expected first name Bo, got %q", got.Get("First Name"))
	}
}

// TestNormalizeRecord_CollisionLastWins tests the deterministic tie-break
func TestNormalizeRecord_CollisionLastWins(t *testing.T) {
	raw := map[string]*string{
		"email":         strPtr("first@example.com"),
		"Email Address": strPtr("second@example.com"),
		"mail":          strPtr("third@example.com"),
	}

	// sorted raw keys: "Email Address", "email", "mail"
	for i := 0; i < 20; i++ {
		if got := NormalizeRecord(raw).Email(); got != "third@example.com" {
			t.Fatalf("expected last sorted key to win, got %q", got)
		}
	}
}

// TestNormalizeRow_HeaderOrder tests that a later duplicate column overrides an earlier one
func TestNormalizeRow_HeaderOrder(t *testing.T) {
	header := []string{"Email", "First Name", "E-mail", "Notes"}
	cells := []string{"old@example.com", " Ana", "new@example.com"}

	got := NormalizeRow(header, cells)
	expected := Record{"email": "new@example.com", "firstname": "Ana", "notes": ""}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("NormalizeRow() = %v, want %v", got, expected)
	}
}

// TestRecord_GetAbsent tests the explicit absent-key semantics
func TestRecord_GetAbsent(t *testing.T) {
	rec := Record{"firstname": "Ana"}

	if got := rec.Get("Last Name"); got != "" {
		t.Errorf("Get() for absent key = %q, want empty", got)
	}
	if _, ok := rec.Lookup("lastname"); ok {
		t.Error("Lookup() reported absent key as present")
	}
	if got := rec.Get("FNAME"); got != "Ana" {
		t.Errorf("Get(FNAME) = %q, want Ana", got)
	}
}

// TestNewRecord tests normalization of a plain string map
func TestNewRecord(t *testing.T) {
	got := NewRecord(map[string]string{"User Name": " ana99 ", "Mail": "ana@example.com"})
	expected := Record{"username": "ana99", "email": "ana@example.com"}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("NewRecord() = %v, want %v", got, expected)
	}
}
