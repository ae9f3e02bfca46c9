package infrastructure

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxResumeBytes caps how much of an uploaded file is read.
const MaxResumeBytes = 1 << 20

// ErrExtractionUnsupported is returned for formats whose text cannot be extracted.
var ErrExtractionUnsupported = errors.New("text extraction is not supported for this file type")

// ExtractText returns the plain text of an uploaded resume. Plain text and
// markdown are read directly; PDF and Word documents are not parsed.
func ExtractText(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	switch ext {
	case "txt", "text", "md":
		data, err := io.ReadAll(io.LimitReader(r, MaxResumeBytes))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", filename, err)
		}
		text := string(data)
		if !utf8.ValidString(text) {
			text = strings.ToValidUTF8(text, "�")
		}
		return strings.TrimSpace(text), nil
	case "pdf", "doc", "docx":
		return "", fmt.Errorf("%s: %w", filename, ErrExtractionUnsupported)
	default:
		return "", fmt.Errorf("%s (.%s): %w", filename, ext, ErrExtractionUnsupported)
	}
}
