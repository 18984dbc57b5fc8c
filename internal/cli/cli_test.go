package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sangkips/mail-merge-service/internal/config"
	"github.com/sangkips/mail-merge-service/internal/mailer"
	"github.com/xuri/excelize/v2"
)

// Mock Transport
type mockTransport struct {
	failFor map[string]bool
	sent    []mailer.Message
}

func (m *mockTransport) Send(ctx context.Context, msg mailer.Message) (string, error) {
	m.sent = append(m.sent, msg)
	if m.failFor[msg.To] {
		return "", errors.New("550 mailbox unavailable")
	}
	return "<id@example.com>", nil
}

func (m *mockTransport) Verify(ctx context.Context) error {
	return nil
}

var _ mailer.Transport = (*mockTransport)(nil)

func writeFixtures(t *testing.T) (templatePath, recipientsPath string) {
	t.Helper()
	dir := t.TempDir()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Hello {First Name}")
	f.SetCellValue(sheet, "A2", "Dear {first_name} {surname}, see {company}.")

	templatePath = filepath.Join(dir, "welcome.xlsx")
	if err := f.SaveAs(templatePath); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	recipientsPath = filepath.Join(dir, "list.csv")
	csv := "First Name,Last Name,Email\nJane,Doe,jane@example.com\nBob,Ray,bob@example.com\n"
	if err := os.WriteFile(recipientsPath, []byte(csv), 0644); err != nil {
		t.Fatalf("failed to write recipients: %v", err)
	}
	return templatePath, recipientsPath
}

func run(t *testing.T, d deps, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(d)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testDeps(transport mailer.Transport) deps {
	return deps{
		loadConfig: func() (*config.Config, error) {
			return &config.Config{SMTPFrom: "news@example.com", MailTransport: config.TransportSMTP}, nil
		},
		newTransport: func(cfg *config.Config) (mailer.Transport, error) {
			return transport, nil
		},
	}
}

func TestFieldsCmd(t *testing.T) {
	tmpl, _ := writeFixtures(t)

	out, err := run(t, testDeps(nil), "fields", "--template", tmpl)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out != "firstname\nlastname\ncompany\n" {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestPreviewCmd(t *testing.T) {
	tmpl, recipients := writeFixtures(t)

	out, err := run(t, testDeps(nil), "preview", "--template", tmpl, "--recipients", recipients, "--index", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, want := range []string{
		"Recipient 2 of 2",
		"To: bob@example.com",
		"Subject: Hello Bob",
		"Missing fields: company",
		"Dear Bob Ray, see {company}.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSendCmd(t *testing.T) {
	tmpl, recipients := writeFixtures(t)
	transport := &mockTransport{failFor: map[string]bool{"bob@example.com": true}}

	out, err := run(t, testDeps(transport), "send", "--template", tmpl, "--recipients", recipients)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(out, "Successfully sent 1 out of 2 emails") {
		t.Errorf("Expected summary line, got:\n%s", out)
	}
	if !strings.Contains(out, `Failed to send to "bob@example.com" (row 2)`) {
		t.Errorf("Expected failure line, got:\n%s", out)
	}
	if len(transport.sent) != 2 {
		t.Fatalf("Expected 2 sends, got %d", len(transport.sent))
	}
	if transport.sent[0].From != "news@example.com" {
		t.Errorf("Expected from news@example.com, got %s", transport.sent[0].From)
	}
}

func TestSendCmd_DryRun(t *testing.T) {
	tmpl, recipients := writeFixtures(t)
	transport := &mockTransport{}

	out, err := run(t, testDeps(transport), "send", "--template", tmpl, "--recipients", recipients, "--dry-run")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Successfully sent 2 out of 2 emails") {
		t.Errorf("Expected summary line, got:\n%s", out)
	}
	if len(transport.sent) != 0 {
		t.Error("Expected dry run not to use the configured transport")
	}
}

func TestSendCmd_Errors(t *testing.T) {
	tmpl, _ := writeFixtures(t)
	dir := t.TempDir()

	headerOnly := filepath.Join(dir, "empty.csv")
	os.WriteFile(headerOnly, []byte("email\n"), 0644)
	unsupported := filepath.Join(dir, "list.txt")
	os.WriteFile(unsupported, []byte("email\n"), 0644)

	tests := []struct {
		name string
		args []string
	}{
		{"missing flags", []string{"send"}},
		{"no recipients", []string{"send", "--template", tmpl, "--recipients", headerOnly}},
		{"unsupported recipients", []string{"send", "--template", tmpl, "--recipients", unsupported}},
		{"missing file", []string{"send", "--template", filepath.Join(dir, "nope.docx"), "--recipients", headerOnly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{}
			if _, err := run(t, testDeps(transport), tt.args...); err == nil {
				t.Error("Expected an error")
			}
			if len(transport.sent) != 0 {
				t.Error("Expected no sends")
			}
		})
	}
}
