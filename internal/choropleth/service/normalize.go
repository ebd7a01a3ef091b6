package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey canonicalizes a region or header name for comparison:
// "Toluca  de  Lerdo" and "TOLUCA_DE_LERDO" both yield "TOLUCA_DE_LERDO".
// Marks are stripped before upper-casing: letters such as "ǰ" have no
// single-rune upper case and only fold once the caron is gone. A second
// strip catches marks that upper-casing may expose.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	out := strings.ToUpper(foldMarks(s))
	out = foldMarks(out)
	return strings.Join(strings.Fields(out), "_")
}

func foldMarks(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}
