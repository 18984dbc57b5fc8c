package merge

import (
	"sort"
	"strings"
)

// Record holds one recipient's fields keyed by canonical key.
type Record map[string]string

// NewRecord normalizes a plain string map into a Record.
func NewRecord(raw map[string]string) Record {
	keys := sortedKeys(raw)
	rec := make(Record, len(raw))
	for _, k := range keys {
		rec[Canonicalize(k)] = strings.TrimSpace(raw[k])
	}
	return rec
}

// NormalizeRecord canonicalizes keys and trims values. A nil value becomes the
// empty string. When several raw keys collapse onto the same canonical key the
// one sorting last wins.
func NormalizeRecord(raw map[string]*string) Record {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := make(Record, len(raw))
	for _, k := range keys {
		value := ""
		if v := raw[k]; v != nil {
			value = strings.TrimSpace(*v)
		}
		rec[Canonicalize(k)] = value
	}
	return rec
}

// NormalizeRow builds a Record from a header row and one data row. Columns are
// applied left to right, so a later duplicate column overrides an earlier one.
// Cells missing from a short row are recorded as empty strings.
func NormalizeRow(header, cells []string) Record {
	rec := make(Record, len(header))
	for i, h := range header {
		value := ""
		if i < len(cells) {
			value = strings.TrimSpace(cells[i])
		}
		rec[Canonicalize(h)] = value
	}
	return rec
}

// Get returns the value stored for key, or "" when absent.
func (r Record) Get(key string) string {
	return r[Canonicalize(key)]
}

// Lookup reports whether key is present, distinguishing absent from empty.
func (r Record) Lookup(key string) (string, bool) {
	v, ok := r[Canonicalize(key)]
	return v, ok
}

// Email is shorthand for the recipient's canonical email field.
func (r Record) Email() string {
	return r[FieldEmail]
}

// normalized returns r with canonical keys, reusing r when it already is.
func (r Record) normalized() Record {
	for k := range r {
		if Canonicalize(k) != k {
			return NewRecord(r)
		}
	}
	return r
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
