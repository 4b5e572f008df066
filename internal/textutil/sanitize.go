package textutil

import (
	"strings"
	"unicode"
)

// FolderKey folds a platform folder name or alias into a lookup key. ASCII
// letters are lowercased, digits, "-" and "_" are kept, and any other run of
// characters collapses to a single "_". Blank input yields "unknown".
func FolderKey(value string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.TrimSpace(value) {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if gap && b.Len() > 0 {
				b.WriteByte('_')
			}
			gap = false
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			gap = false
			b.WriteRune(r)
		default:
			gap = true
		}
	}
	if key := strings.Trim(b.String(), "_-"); key != "" {
		return key
	}
	return "unknown"
}
