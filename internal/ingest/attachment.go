package ingest

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind is a coarse attachment category used for previews.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

// Attachment is a file sent along with every message of a campaign.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Kind classifies the attachment.
func (a Attachment) Kind() Kind {
	return Classify(a.Filename, a.ContentType)
}

// Size returns the content length in bytes.
func (a Attachment) Size() int {
	return len(a.Content)
}

var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
}

// officeTypes covers extensions that the system MIME table often lacks.
var officeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".csv":  "text/csv",
}

// Classify reports whether a file is an image, a document or something else.
func Classify(name, contentType string) Kind {
	if strings.HasPrefix(contentType, "image/") {
		return KindImage
	}
	if documentExtensions[extension(name)] {
		return KindDocument
	}
	return KindOther
}

// ContentTypeFor picks the declared content type when present, then the type
// registered for the extension, then the type sniffed from content.
func ContentTypeFor(name, declared string, content []byte) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	ext := extension(name)
	if t, ok := officeTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return mimetype.Detect(content).String()
}

// NewAttachment reads r fully into an Attachment.
func NewAttachment(name, declaredType string, r io.Reader) (Attachment, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read attachment %s: %w", name, err)
	}
	return Attachment{
		Filename:    name,
		ContentType: ContentTypeFor(name, declaredType, content),
		Content:     content,
	}, nil
}

// ReadAttachment loads an uploaded multipart file part.
func ReadAttachment(fh *multipart.FileHeader) (Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to open attachment %s: %w", fh.Filename, err)
	}
	defer f.Close()

	return NewAttachment(fh.Filename, fh.Header.Get("Content-Type"), f)
}
