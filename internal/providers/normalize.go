package providers

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rommapp/romm-sub002/internal/romname"
	"github.com/rommapp/romm-sub002/internal/textutil"
)

func rawJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

func scaledRating(value, factor float64) *float64 {
	if value <= 0 {
		return nil
	}
	scaled := min(value*factor, 100)
	return &scaled
}

func unixDate(seconds *int64) string {
	if seconds == nil || *seconds == 0 {
		return ""
	}
	return time.Unix(*seconds, 0).UTC().Format(time.DateOnly)
}

// isoDate trims provider date strings ("1985-09-13T00:00:00-04:00",
// "1985-09-13 00:00:00", "1985") to YYYY-MM-DD or YYYY.
func isoDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 10 {
		if _, err := time.Parse(time.DateOnly, value[:10]); err == nil {
			return value[:10]
		}
	}
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006", "2006-01"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(time.DateOnly)
		}
	}
	if len(value) == 4 {
		if _, err := strconv.Atoi(value); err == nil {
			return value
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// regionList maps provider region codes to display names, keeping
// unknown codes uppercased.
func regionList(codes ...string) []string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" || strings.EqualFold(code, "ss") {
			continue
		}
		if name, ok := romname.RegionName(code); ok {
			names = append(names, name)
			continue
		}
		names = append(names, strings.ToUpper(code))
	}
	return nonEmpty(names...)
}

func splitList(value string, seps string) []string {
	return nonEmpty(strings.FieldsFunc(value, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})...)
}

// looseMatch prefilters large local lists before the matcher scores them.
func looseMatch(term, name string) bool {
	a := romname.NormalizeName(term)
	b := romname.NormalizeName(name)
	if a == "" || b == "" {
		return false
	}
	return a == b || textutil.TitleSimilarity(a, b) >= 0.5
}
