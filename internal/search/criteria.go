package search

import (
	"strings"

	"github.com/yourorg/listing-search/internal/canon"
)

// FurnishingPreference is the requested rental style. Empty means no preference.
type FurnishingPreference string

const (
	FurnishingFurnished   FurnishingPreference = "furnished"
	FurnishingUnfurnished FurnishingPreference = "unfurnished"
)

// Criteria is a single search request. Zero values mean "not specified";
// room counts of 0 are unspecified, PriceMax of 0 means unbounded.
type Criteria struct {
	Location     string
	PropertyType string
	Furnishing   FurnishingPreference
	PriceMin     float64
	PriceMax     float64
	Bedrooms     int
	Bathrooms    int
	Kitchens     int
	LivingRooms  int
	Amenities    []string
	SurfaceArea  float64 // m², commercial searches only
}

// HasLocationFilter reports whether the caller supplied a location query.
func (c Criteria) HasLocationFilter() bool {
	return strings.TrimSpace(c.Location) != ""
}

// IsCommercialSearch reports whether the requested type is the commercial category.
func (c Criteria) IsCommercialSearch() bool {
	return CanonicalType(c.PropertyType) == TypeBoutique && c.PropertyType != ""
}

// countrySegments are dropped from location queries: every listing is in
// Cameroon, so the country name carries no signal.
var countrySegments = map[string]struct{}{
	"cameroun": {},
	"cameroon": {},
}

const minTokenLen = 3

// ParsedLocationQuery is the tokenized form of a free-text location query.
// District is the first comma segment, City the last one (when there are at
// least two), Tokens the folded ≥3-char words with country names removed.
// All fields are accent- and case-folded.
type ParsedLocationQuery struct {
	Raw      string
	Compact  string
	District string
	City     string
	Tokens   []string
}

// ParseLocationQuery splits a raw location string into comparable tokens.
// Empty input yields an all-empty query, never an error.
func ParseLocationQuery(raw string) ParsedLocationQuery {
	q := ParsedLocationQuery{Raw: strings.TrimSpace(raw)}
	if q.Raw == "" {
		return q
	}
	q.Compact = canon.Compact(q.Raw)

	var segments []string
	for _, part := range strings.Split(q.Raw, ",") {
		folded := canon.Fold(part)
		if folded == "" {
			continue
		}
		if _, skip := countrySegments[folded]; skip {
			continue
		}
		segments = append(segments, folded)
	}
	if len(segments) > 0 {
		q.District = segments[0]
	}
	if len(segments) >= 2 {
		q.City = segments[len(segments)-1]
	}

	seen := make(map[string]struct{})
	for _, segment := range segments {
		for _, word := range strings.Fields(segment) {
			token := canon.Fold(word)
			if len(token) < minTokenLen {
				continue
			}
			if _, skip := countrySegments[token]; skip {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			q.Tokens = append(q.Tokens, token)
		}
	}
	return q
}
