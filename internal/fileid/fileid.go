// Package fileid generates filesystem-safe document identifiers from
// user-supplied filenames.
package fileid

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// SafeFilename returns a unique, filesystem-safe identifier for an uploaded
// file: a timestamp prefix, a short random suffix, and the sanitized base
// name. The timestamp keeps listings in upload order; the random part makes
// repeated uploads of the same file distinct.
func SafeFilename(filename string, now time.Time) string {
	base := Sanitize(filepath.Base(filename))
	if base == "" {
		base = "document.pdf"
	}
	return fmt.Sprintf("%s_%s_%s", now.UTC().Format("20060102T150405"), uuid.New().String()[:8], base)
}

// Sanitize replaces every character outside [A-Za-z0-9._-] with an underscore
// and trims leading dots so the result cannot escape a directory or hide.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}
