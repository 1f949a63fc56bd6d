// Package naming folds object names into portable ASCII identifiers for
// file names and interchange formats that choke on spaces or accents.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sanitize strips diacritics (NFD, drop marks), maps every rune outside
// [A-Za-z0-9_.-] to '_' and trims leading/trailing underscores. An input
// with nothing usable becomes "unnamed".
func Sanitize(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unnamed"
	}
	return out
}

// AssetFile is the exported file name for an asset: "<name>_lod0.<ext>".
func AssetFile(name, ext string) string {
	return Sanitize(name) + "_lod0." + strings.TrimPrefix(ext, ".")
}
