package sanitize

import (
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// dropInvalid removes ill-formed UTF-8. The runes package hands invalid bytes to
// the predicate as utf8.RuneError.
var dropInvalid = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == utf8.RuneError
}))

// DecodeLossy decodes data as UTF-8, dropping undecodable bytes instead of
// failing. Valid input is returned unchanged, including any U+FFFD it carries.
func DecodeLossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	out, _, err := transform.Bytes(dropInvalid, data)
	if err != nil {
		// Remove does not fail on complete input.
		return string(data)
	}
	return string(out)
}
