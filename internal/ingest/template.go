package ingest

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/sangkips/mail-merge-service/internal/merge"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// ParseTemplate reads a .docx or .xlsx template. The first line (or first cell)
// becomes the subject and the rest the body. Placeholders in both are
// normalized to their canonical form.
func ParseTemplate(name string, r io.Reader) (merge.Template, error) {
	var (
		tmpl merge.Template
		err  error
	)

	switch extension(name) {
	case ".docx":
		tmpl, err = templateFromDocx(r)
	case ".xlsx":
		tmpl, err = templateFromXlsx(r)
	default:
		return merge.Template{}, unsupported(name)
	}
	if err != nil {
		return merge.Template{}, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	return tmpl.Normalize(), nil
}

func templateFromDocx(r io.Reader) (merge.Template, error) {
	lines, err := docxToHTMLLines(r)
	if err != nil {
		return merge.Template{}, err
	}
	if len(lines) == 0 {
		return merge.Template{Subject: defaultSubject}, nil
	}

	subject := strings.TrimSpace(html.UnescapeString(htmlTag.ReplaceAllString(lines[0], "")))
	if subject == "" {
		subject = defaultSubject
	}

	return merge.Template{
		Subject: subject,
		Body:    strings.Join(lines[1:], "\n"),
	}, nil
}

func templateFromXlsx(r io.Reader) (merge.Template, error) {
	rows, err := readFirstSheet(r)
	if err != nil {
		return merge.Template{}, err
	}

	subject := defaultSubject
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] != "" {
		subject = rows[0][0]
	}

	var body []string
	if len(rows) > 1 {
		body = make([]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			body = append(body, strings.Join(row, " "))
		}
	}

	return merge.Template{
		Subject: subject,
		Body:    strings.Join(body, "\n"),
	}, nil
}
