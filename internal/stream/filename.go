// Package stream delivers download artifacts to HTTP clients with
// guaranteed cleanup, and builds the attachment headers for them.
package stream

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBasename is used when a request carries no display title.
const DefaultBasename = "downfiles"

// maxBasenameRunes caps the sanitized title length.
const maxBasenameRunes = 80

var (
	illegalChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// SafeFilename builds an on-disk-safe filename from a display title.
// Path separators, shell-hostile characters and whitespace runs become
// underscores; the base is capped at 80 runes.
func SafeFilename(title, ext string) string {
	name := title
	if name == "" {
		name = DefaultBasename
	}
	name = illegalChars.ReplaceAllString(name, "_")
	name = whitespace.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > maxBasenameRunes {
		name = string(runes[:maxBasenameRunes])
	}
	return name + "." + ext
}

// ContentDisposition builds an attachment header carrying both an ASCII
// fallback filename and an RFC 5987 encoded display name, so non-Latin
// titles survive every browser.
func ContentDisposition(title, ext string) string {
	safe := SafeFilename(title, ext)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		asciiFallback(safe), rfc5987Encode(safe))
}

// asciiFallback replaces every non-ASCII rune with an underscore.
func asciiFallback(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0x20 && r < 0x7f {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// rfc5987Encode percent-encodes everything outside RFC 5987's attr-char
// set.
func rfc5987Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
		} else {
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '&', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
