package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestParseTemplate_Docx tests subject and body extraction from a Word document
func TestParseTemplate_Docx(t *testing.T) {
	data := buildDocx(t,
		"Welcome aboard, {First Name}!",
		"Dear {FNAME} {Last Name},",
		"",
		"Your login is {User Name} & your plan is {Plan}.",
	)

	tmpl, err := ParseTemplate("welcome.DOCX", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if tmpl.Subject != "Welcome aboard, {firstname}!" {
		t.Errorf("unexpected subject %q", tmpl.Subject)
	}

	expectedBody := "<p>Dear {firstname} {lastname},</p>\n<p>Your login is {username} &amp; your plan is {plan}.</p>"
	if tmpl.Body != expectedBody {
		t.Errorf("unexpected body\n got: %q\nwant: %q", tmpl.Body, expectedBody)
	}
}

// TestParseTemplate_DocxEmpty tests the default subject for an empty document
func TestParseTemplate_DocxEmpty(t *testing.T) {
	tmpl, err := ParseTemplate("empty.docx", bytes.NewReader(buildDocx(t)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tmpl.Subject != "No Subject" || tmpl.Body != "" {
		t.Errorf("unexpected template %+v", tmpl)
	}
}

// TestParseTemplate_DocxCorrupt tests that a non-zip file is reported
func TestParseTemplate_DocxCorrupt(t *testing.T) {
	_, err := ParseTemplate("broken.docx", strings.NewReader("not a zip"))
	if err == nil {
		t.Fatal("Expected error for corrupt docx")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Error("corrupt docx should not be reported as unsupported format")
	}
}

// TestParagraphs_NestedTextBox tests that a text box paragraph does not cut its parent short
func TestParagraphs_NestedTextBox(t *testing.T) {
	doc := `<w:document xmlns:w="` + wordNamespace + `"><w:body>` +
		`<w:p><w:r><w:t>Subject</w:t></w:r></w:p>` +
		`<w:p>` +
		`<w:r><w:t xml:space="preserve">Outer </w:t></w:r>` +
		`<w:r><w:txbxContent><w:p><w:r><w:t>inner</w:t></w:r></w:p></w:txbxContent></w:r>` +
		`<w:r><w:t xml:space="preserve"> tail</w:t></w:r>` +
		`</w:p>` +
		`</w:body></w:document>`

	lines, err := paragraphs(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"<p>Subject</p>", "<p>Outer inner tail</p>"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

// TestParseTemplate_Xlsx tests subject from the first cell and body from later rows
func TestParseTemplate_Xlsx(t *testing.T) {
	data := buildXlsx(t, [][]string{
		{"Hello {First Name}"},
		{"Dear {FNAME},", "welcome"},
		{"Contact {Email Address}"},
	})

	tmpl, err := ParseTemplate("campaign.xlsx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if tmpl.Subject != "Hello {firstname}" {
		t.Errorf("unexpected subject %q", tmpl.Subject)
	}
	if tmpl.Body != "Dear {firstname}, welcome\nContact {email}" {
		t.Errorf("unexpected body %q", tmpl.Body)
	}
}

// TestParseTemplate_XlsxEmptySubject tests the default subject for a blank first cell
func TestParseTemplate_XlsxEmptySubject(t *testing.T) {
	data := buildXlsx(t, [][]string{
		{"", "ignored"},
		{"Body"},
	})

	tmpl, err := ParseTemplate("campaign.xlsx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tmpl.Subject != "No Subject" {
		t.Errorf("expected default subject, got %q", tmpl.Subject)
	}
}

// TestParseTemplate_Unsupported tests rejection of unknown extensions
func TestParseTemplate_Unsupported(t *testing.T) {
	for _, name := range []string{"template.txt", "template.doc", "template", "template.csv"} {
		_, err := ParseTemplate(name, strings.NewReader("Subject\nBody"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseTemplate(%q) error = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}
