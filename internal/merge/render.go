package merge

import (
	"regexp"
	"slices"
)

// tokenPattern matches a non-nested {key} placeholder.
var tokenPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Template is the subject and body shared by every message of a campaign.
type Template struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Rendered is a template merged with one recipient's record.
type Rendered struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ExtractTokens returns the canonical keys of every placeholder in text,
// deduplicated in order of first appearance.
func ExtractTokens(text string) []string {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		key := Canonicalize(m[1])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, key)
	}
	return tokens
}

// NormalizeText rewrites every placeholder in text to its canonical {key} form.
func NormalizeText(text string) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		return "{" + Canonicalize(token) + "}"
	})
}

// Render substitutes every placeholder in text with the matching record value.
// Values are inserted as-is. Placeholders without a matching field are left
// exactly as written, braces included.
func Render(text string, record Record) string {
	if text == "" {
		return ""
	}
	rec := record.normalized()
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		if v, ok := rec[Canonicalize(token)]; ok {
			return v
		}
		return token
	})
}

// RenderTemplate renders both the subject and the body of t for one recipient.
func RenderTemplate(t Template, record Record) Rendered {
	rec := record.normalized()
	return Rendered{
		Subject: Render(t.Subject, rec),
		Body:    Render(t.Body, rec),
	}
}

// Normalize returns t with every placeholder rewritten to canonical form.
func (t Template) Normalize() Template {
	return Template{
		Subject: NormalizeText(t.Subject),
		Body:    NormalizeText(t.Body),
	}
}

// Fields lists the canonical keys referenced by the subject and then the body.
func (t Template) Fields() []string {
	fields := ExtractTokens(t.Subject)
	for _, key := range ExtractTokens(t.Body) {
		if !slices.Contains(fields, key) {
			fields = append(fields, key)
		}
	}
	return fields
}

// MissingFields lists the placeholders in text that record cannot resolve.
func MissingFields(text string, record Record) []string {
	rec := record.normalized()
	missing := []string{}
	for _, key := range ExtractTokens(text) {
		if _, ok := rec[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
