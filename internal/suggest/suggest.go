package suggest

import (
	"sort"
	"strings"

	"github.com/yourorg/listing-search/internal/canon"
	"github.com/yourorg/listing-search/places"
)

// AddressRecord is one stored listing address considered for a suggestion.
type AddressRecord struct {
	AddressText string
	District    string
	City        string
}

const (
	overallWeight  = 10
	districtWeight = 6
	cityWeight     = 3
)

func countMatches(haystack string, tokens []string) int {
	n := 0
	for _, t := range tokens {
		if strings.Contains(haystack, t) {
			n++
		}
	}
	return n
}

func buildPrimary(r AddressRecord) string {
	if d := strings.TrimSpace(r.District); d != "" {
		return d
	}
	if a := strings.TrimSpace(r.AddressText); a != "" {
		first, _, _ := strings.Cut(a, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return strings.TrimSpace(r.City)
}

func buildSecondary(primary string, r AddressRecord) string {
	var items []string
	if c := strings.TrimSpace(r.City); c != "" && !strings.EqualFold(c, primary) {
		items = append(items, c)
	}
	if a := strings.TrimSpace(r.AddressText); a != "" && !strings.EqualFold(a, primary) {
		dup := false
		for _, it := range items {
			if it == a {
				dup = true
			}
		}
		if !dup {
			items = append(items, a)
		}
	}
	return strings.Join(items, " • ")
}

// FromAddresses scores stored addresses against the query tokens and turns
// the matches into suggestions, best first. Token scoring rewards district
// hits over city hits so neighborhood names surface before metro areas.
func FromAddresses(query string, records []AddressRecord, limit int) []places.Suggestion {
	if limit <= 0 {
		limit = 8
	}
	tokens := strings.Fields(canon.Fold(query))
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		s     places.Suggestion
		score int
	}
	var matches []scored
	for _, r := range records {
		searchable := canon.Fold(strings.Join([]string{r.AddressText, r.District, r.City}, " "))
		overall := countMatches(searchable, tokens)
		if overall == 0 {
			continue
		}
		score := overall*overallWeight +
			countMatches(canon.Fold(r.District), tokens)*districtWeight +
			countMatches(canon.Fold(r.City), tokens)*cityWeight

		primary := buildPrimary(r)
		if primary == "" {
			continue
		}
		matches = append(matches, scored{
			s: places.Suggestion{
				ID:          "internal-" + canon.Compact(primary+r.City),
				Primary:     primary,
				Secondary:   buildSecondary(primary, r),
				Description: strings.TrimSpace(r.AddressText),
			},
			score: score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]places.Suggestion, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.s)
	}
	return out
}

// Merge combines internal suggestions with external place predictions,
// internal first, deduplicating on the folded primary text.
func Merge(internal, external []places.Suggestion, limit int) []places.Suggestion {
	if limit <= 0 {
		limit = 8
	}
	seen := make(map[string]struct{})
	var out []places.Suggestion
	for _, s := range append(append([]places.Suggestion{}, internal...), external...) {
		key := canon.Compact(s.Primary)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
