// Package reader turns input documents into a single raw-text blob for
// extraction. Reading is pure and synchronous: no retries, no caching.
package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind declares the format of an input document. No auto-detection
// happens here beyond the extension mapping in KindForPath; the caller
// owns that decision.
type Kind string

const (
	// KindPlainText is a UTF-8 text file.
	KindPlainText Kind = "plain-text"

	// KindPaginated is a paginated binary document (PDF). Text is
	// extracted page by page and joined with newlines.
	KindPaginated Kind = "paginated-document"
)

// Sentinel errors for document reading.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrDecode indicates an unreadable or mis-encoded input document.
	ErrDecode = errors.New("input document could not be decoded")

	// ErrUnsupportedFormat indicates an input kind this reader does not
	// recognize.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// KindForPath maps a file extension to an input kind. Anything that is
// not a PDF is treated as plain text.
func KindForPath(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return KindPaginated
	}
	return KindPlainText
}

// Read produces the raw text of the document at path according to its
// declared kind.
func Read(path string, kind Kind) (string, error) {
	switch kind {
	case KindPlainText:
		return readPlainText(path)
	case KindPaginated:
		return readPaginated(path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}
}

func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrDecode, filepath.Base(path))
	}
	return string(data), nil
}
