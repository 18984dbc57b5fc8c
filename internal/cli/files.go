package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sangkips/mail-merge-service/internal/domains/campaigns"
	"github.com/sangkips/mail-merge-service/internal/ingest"
	"github.com/sangkips/mail-merge-service/internal/merge"
)

func loadTemplate(path string) (merge.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return merge.Template{}, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()

	return ingest.ParseTemplate(filepath.Base(path), f)
}

func loadRecipients(path string) ([]merge.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipients: %w", err)
	}
	defer f.Close()

	return ingest.ParseRecipients(filepath.Base(path), f)
}

func loadAttachments(paths []string) ([]ingest.Attachment, error) {
	attachments := make([]ingest.Attachment, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment: %w", err)
		}
		att, err := ingest.NewAttachment(filepath.Base(p), "", f)
		f.Close()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}

// campaignFiles are the flags shared by preview and send.
type campaignFiles struct {
	template    string
	recipients  string
	attachments []string
}

func (cf campaignFiles) load() (campaigns.Campaign, error) {
	var c campaigns.Campaign
	var err error

	if c.Template, err = loadTemplate(cf.template); err != nil {
		return c, err
	}
	if c.Recipients, err = loadRecipients(cf.recipients); err != nil {
		return c, err
	}
	if c.Attachments, err = loadAttachments(cf.attachments); err != nil {
		return c, err
	}
	return c, nil
}
