package romname

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFolds = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D",
	"þ", "th", "Þ", "Th", "’", "'", "‘", "'", "“", "\"", "”", "\"",
	"–", "-", "—", "-", "…", "...",
)

var symbolWords = strings.NewReplacer("&", " and ", "+", " and ")

// stripMarks decomposes s and drops combining marks so "Pokémon" becomes "Pokemon".
func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeName reduces a title to lowercase space-separated words with
// diacritics and punctuation removed and a leading "the" dropped. It is the
// key used for exact-name matching and for filename sibling grouping.
func NormalizeName(title string) string {
	folded := cases.Fold().String(stripMarks(symbolWords.Replace(title)))
	var b strings.Builder
	b.Grow(len(folded))
	space := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if r == '\'' || r == '.' {
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	out := strings.TrimSpace(b.String())
	out = strings.TrimPrefix(out, "the ")
	return out
}

// Transliterate converts a title to ASCII for providers that reject other
// characters. Runes with no ASCII equivalent are dropped.
func Transliterate(title string) string {
	folded := stripMarks(asciiFolds.Replace(title))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}

// IsASCII reports whether s contains only ASCII characters.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
