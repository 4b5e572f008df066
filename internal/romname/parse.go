package romname

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`\(([^)]*)\)|\[([^\]]*)\]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	articlePattern    = regexp.MustCompile(`(?i)^(.+?),\s*(the|a|an)(\s+-\s+.*|\s*:\s+.*)?$`)
	revisionPattern   = regexp.MustCompile(`(?i)^rev(?:ision)?\s*([0-9a-z]+(?:\.[0-9a-z]+)*)$`)
	versionPattern    = regexp.MustCompile(`(?i)^v\s*(\d+(?:\.\d+)*[a-z]?)$`)
	serialPattern     = regexp.MustCompile(`(?i)^[a-z]{4}[-_ ]?\d{3,5}(?:\.\d{2})?$`)
	extensionPattern  = regexp.MustCompile(`^[A-Za-z0-9]{1,5}$`)
)

var regionNames = map[string]string{
	"u":              "USA",
	"us":             "USA",
	"usa":            "USA",
	"e":              "Europe",
	"eu":             "Europe",
	"europe":         "Europe",
	"j":              "Japan",
	"jp":             "Japan",
	"japan":          "Japan",
	"w":              "World",
	"world":          "World",
	"k":              "Korea",
	"korea":          "Korea",
	"a":              "Australia",
	"australia":      "Australia",
	"as":             "Asia",
	"asia":           "Asia",
	"b":              "Brazil",
	"brazil":         "Brazil",
	"c":              "China",
	"china":          "China",
	"canada":         "Canada",
	"f":              "France",
	"france":         "France",
	"g":              "Germany",
	"germany":        "Germany",
	"s":              "Spain",
	"spain":          "Spain",
	"i":              "Italy",
	"italy":          "Italy",
	"netherlands":    "Netherlands",
	"sweden":         "Sweden",
	"taiwan":         "Taiwan",
	"hong kong":      "Hong Kong",
	"russia":         "Russia",
	"uk":             "United Kingdom",
	"united kingdom": "United Kingdom",
}

var languageCodes = map[string]struct{}{
	"en": {}, "fr": {}, "de": {}, "es": {}, "it": {}, "nl": {}, "pt": {},
	"sv": {}, "no": {}, "da": {}, "fi": {}, "zh": {}, "ja": {}, "ko": {},
	"ru": {}, "pl": {}, "ca": {}, "cs": {}, "hu": {}, "el": {}, "tr": {},
}

// RegionName maps a region code or name ("us", "eu", "Japan") to its
// canonical display name.
func RegionName(code string) (string, bool) {
	name, ok := regionNames[strings.ToLower(strings.TrimSpace(code))]
	return name, ok
}

// Tags holds the classified dump tags of a file name.
type Tags struct {
	Regions   []string
	Revision  string
	Languages []string
	Serial    string
	Other     []string
}

// Region returns the first region tag, or "" when none was present.
func (t Tags) Region() string {
	if len(t.Regions) == 0 {
		return ""
	}
	return t.Regions[0]
}

// Name is a parsed ROM file name.
type Name struct {
	FileName       string
	Extension      string
	SearchTerm     string
	NormalizedName string
	Tags           Tags
}

// Parse splits a ROM file name into its search term and tags. Directory
// components are ignored.
func Parse(fileName string) Name {
	base := filepath.Base(strings.TrimSpace(fileName))
	result := Name{FileName: base}

	stem := base
	if ext := filepath.Ext(base); ext != "" && extensionPattern.MatchString(ext[1:]) && len(ext) < len(base) {
		result.Extension = strings.ToLower(ext[1:])
		stem = strings.TrimSuffix(base, ext)
	}

	for _, match := range tagPattern.FindAllStringSubmatch(stem, -1) {
		if match[1] != "" || strings.HasPrefix(match[0], "(") {
			result.Tags.addParenthesised(match[1])
			continue
		}
		result.Tags.addBracketed(match[2])
	}

	term := tagPattern.ReplaceAllString(stem, " ")
	term = whitespacePattern.ReplaceAllString(term, " ")
	term = strings.TrimSpace(term)
	term = restoreArticle(term)
	if term == "" {
		term = strings.TrimSpace(stem)
	}
	result.SearchTerm = term
	result.NormalizedName = NormalizeName(term)
	return result
}

func (t *Tags) addParenthesised(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	if m := revisionPattern.FindStringSubmatch(raw); m != nil {
		if t.Revision == "" {
			t.Revision = strings.ToUpper(m[1])
		}
		return
	}
	if m := versionPattern.FindStringSubmatch(raw); m != nil {
		if t.Revision == "" {
			t.Revision = m[1]
		}
		return
	}

	parts := splitTagList(raw)
	if regions, ok := classifyRegions(parts); ok {
		t.Regions = appendUnique(t.Regions, regions...)
		return
	}
	if languages, ok := classifyLanguages(parts); ok {
		t.Languages = appendUnique(t.Languages, languages...)
		return
	}
	t.Other = append(t.Other, raw)
}

func (t *Tags) addBracketed(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	if serialPattern.MatchString(raw) && t.Serial == "" {
		t.Serial = NormalizeSerial(raw)
		return
	}
	t.Other = append(t.Other, raw)
}

func splitTagList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '+' })
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}

func classifyRegions(parts []string) ([]string, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		region, ok := regionNames[strings.ToLower(part)]
		if !ok {
			return nil, false
		}
		out = append(out, region)
	}
	return out, true
}

func classifyLanguages(parts []string) ([]string, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		lower := strings.ToLower(part)
		if _, ok := languageCodes[lower]; !ok {
			return nil, false
		}
		out = append(out, strings.ToUpper(lower[:1])+lower[1:])
	}
	return out, true
}

func appendUnique(dst []string, values ...string) []string {
	for _, value := range values {
		found := false
		for _, existing := range dst {
			if existing == value {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, value)
		}
	}
	return dst
}

// restoreArticle moves a trailing ", The" back to the front of the title,
// keeping any " - subtitle" in place.
func restoreArticle(term string) string {
	m := articlePattern.FindStringSubmatch(term)
	if m == nil {
		return term
	}
	article := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
	return strings.TrimSpace(article + " " + m[1] + m[3])
}

// NormalizeSerial uppercases a disc serial, drops dots, and joins prefix and
// number with a hyphen: "slus_005.94" becomes "SLUS-00594".
func NormalizeSerial(raw string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.NewReplacer("_", "-", " ", "-", ".", "").Replace(cleaned)
	if len(cleaned) > 4 && cleaned[4] != '-' {
		cleaned = cleaned[:4] + "-" + cleaned[4:]
	}
	return cleaned
}
