package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/raphaelgruber/sopmigrate-go/internal/schema"
)

// ErrRender indicates the output artifact could not be written.
var ErrRender = errors.New("could not write output artifact")

var (
	// Characters stripped from the title before it becomes a filename.
	unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// maxTitleLen bounds the sanitized title portion of the filename.
const maxTitleLen = 50

// Render writes the record as a Word document into outDir and returns
// the artifact path. The path derives deterministically from title and
// version: two records with the same sanitized title and version
// silently overwrite the same file, last writer wins.
func Render(rec schema.Record, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	path := filepath.Join(outDir, Filename(rec.Title, rec.Version))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer f.Close()

	if err := writeDocx(layout(rec), f); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return path, nil
}

// Filename derives the artifact filename from title and version: strip
// everything outside word characters, whitespace and hyphens, collapse
// whitespace runs to single underscores, truncate to a bounded length,
// then append the version tag.
func Filename(title, version string) string {
	safe := unsafeFilenameChars.ReplaceAllString(title, "")
	safe = strings.TrimSpace(safe)
	safe = whitespaceRun.ReplaceAllString(safe, "_")

	if runes := []rune(safe); len(runes) > maxTitleLen {
		safe = string(runes[:maxTitleLen])
	}

	return safe + "_v" + version + ".docx"
}
