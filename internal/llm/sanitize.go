package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	reYearNormal   = regexp.MustCompile(`^FY \d{2}$`)
	reYearShort    = regexp.MustCompile(`(?i)^F\.?Y\.?\s*'?(\d{2})$`)
	reYearLong     = regexp.MustCompile(`(?i)^(?:F\.?Y\.?|FISCAL\s+YEAR)\s*[-']?\s*(\d{4})$`)
	reYearRange    = regexp.MustCompile(`^(\d{4})\s*[-/\x{2013}]\s*(\d{2,4})$`)
	reYearBare     = regexp.MustCompile(`^(\d{4})$`)
	reYearEmbedded = regexp.MustCompile(`(\d{4})`)
)

// NormalizeYearLabel maps the many ways documents spell a reporting period
// ("FY2024", "F.Y. 24", "Fiscal Year 2024", "2023-24", "2024") onto the
// canonical "FY <two-digit-year>" form. Labels already in canonical form are
// returned unchanged; labels we cannot recognize are returned trimmed, so
// schema validation rejects them instead of silently relabeling columns.
func NormalizeYearLabel(label string) string {
	s := strings.TrimSpace(label)
	switch {
	case reYearNormal.MatchString(s):
		return s
	case reYearShort.MatchString(s):
		return "FY " + reYearShort.FindStringSubmatch(s)[1]
	case reYearLong.MatchString(s):
		return "FY " + lastTwo(reYearLong.FindStringSubmatch(s)[1])
	case reYearRange.MatchString(s):
		// "2023-24" labels the year ending 2024
		return "FY " + lastTwo(reYearRange.FindStringSubmatch(s)[2])
	case reYearBare.MatchString(s):
		return "FY " + lastTwo(s)
	}
	if m := reYearEmbedded.FindStringSubmatch(s); m != nil {
		return "FY " + lastTwo(m[1])
	}
	return s
}

func lastTwo(year string) string {
	return year[len(year)-2:]
}

// NormalizeStatementJSON
// - Canonicalizes year labels in every item's values map
// - Clamps out-of-range confidence into [0,1]
// - Trims currency/units
// - Preserves null values as nulls (missing figure, not zero)
// When two raw labels collapse to the same period, a label already in
// canonical form wins; between relabeled keys the lexically smallest one does.
// It returns the cleaned document plus the list of adjustments applied, so
// callers can log what was touched before strict validation.
func NormalizeStatementJSON(raw []byte) ([]byte, []string, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, err
	}

	var changed []string

	for _, k := range []string{"currency", "units"} {
		if v, ok := doc[k].(string); ok {
			doc[k] = strings.TrimSpace(v)
		}
	}

	items, _ := doc["items"].([]any)
	for i, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}

		if v, ok := item["confidence"].(float64); ok {
			switch {
			case v < 0:
				item["confidence"] = 0.0
				changed = append(changed, fmt.Sprintf("items[%d].confidence clamped", i))
			case v > 1:
				item["confidence"] = 1.0
				changed = append(changed, fmt.Sprintf("items[%d].confidence clamped", i))
			}
		}

		values, ok := item["values"].(map[string]any)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(values))
		for year := range values {
			keys = append(keys, year)
		}
		sort.Strings(keys)

		// Labels already in canonical form claim their period first; the
		// remaining keys relabel in lexical order, so when two raw labels
		// collapse to the same period the survivor is deterministic.
		normalized := make(map[string]any, len(values))
		for _, year := range keys {
			if NormalizeYearLabel(year) == year {
				normalized[year] = values[year]
			}
		}
		for _, year := range keys {
			ny := NormalizeYearLabel(year)
			if ny == year {
				continue
			}
			if _, dup := normalized[ny]; dup {
				changed = append(changed, fmt.Sprintf("items[%d].values[%q] dropped (duplicate period %s)", i, year, ny))
				continue
			}
			changed = append(changed, fmt.Sprintf("items[%d].values[%q] relabeled %s", i, year, ny))
			normalized[ny] = values[year]
		}
		item["values"] = normalized
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, err
	}
	return b, changed, nil
}
