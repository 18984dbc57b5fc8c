// Package ingest turns uploaded template, recipient and attachment files into
// the plain strings and records consumed by the merge engine.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when a file extension is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported file format")

const defaultSubject = "No Subject"

func extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func unsupported(name string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}
