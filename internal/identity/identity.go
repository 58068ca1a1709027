// Package identity derives the note identity strings and duplicate-search checksums
// the receiving application expects.
package identity

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"html"
	"regexp"
	"strings"

	"github.com/zeebo/blake3"
)

// FieldSeparator is the ASCII unit separator joining note field values.
const FieldSeparator = "\x1f"

// GUID derives a note guid from its ordered field values: the BLAKE3 hash of the
// fields joined with FieldSeparator, as 64 lowercase hex characters. Identical field
// values always give the same guid.
func GUID(fields []string) string {
	sum := blake3.Sum256([]byte(strings.Join(fields, FieldSeparator)))
	return hex.EncodeToString(sum[:])
}

var (
	reComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	reStyle   = regexp.MustCompile(`(?si)<style.*?>.*?</style>`)
	reScript  = regexp.MustCompile(`(?si)<script.*?>.*?</script>`)
	reTag     = regexp.MustCompile(`(?s)<.*?>`)
	reMedia   = regexp.MustCompile(`(?i)<img[^>]+src=["']?([^"'>]+)["']?[^>]*>`)
)

// StripHTML removes comments, style and script blocks and tags, then decodes entities.
func StripHTML(s string) string {
	s = reComment.ReplaceAllString(s, "")
	s = reStyle.ReplaceAllString(s, "")
	s = reScript.ReplaceAllString(s, "")
	s = reTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return html.UnescapeString(s)
}

// StripHTMLMedia is StripHTML that keeps image file names in place of <img> tags.
func StripHTMLMedia(s string) string {
	return StripHTML(reMedia.ReplaceAllString(s, " ${1} "))
}

// Checksum is the duplicate-search fingerprint of a sort field: the first four bytes of
// the SHA-1 of the HTML-stripped text, as an unsigned integer.
func Checksum(sortField string) int64 {
	sum := sha1.Sum([]byte(StripHTMLMedia(sortField)))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}
