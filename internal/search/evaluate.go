package search

import (
	"math"
	"strings"

	"github.com/yourorg/listing-search/internal/canon"
)

// LocationQuality is the ordinal match tier between a location query and one
// listing. Recomputed per search, never stored.
type LocationQuality int

const (
	LocationNone LocationQuality = iota
	LocationCityOnly
	LocationDistrictPartial
	LocationExactAddress
)

// Weight orders tiers for ranking: exact=3, district=2, city=1, none=0.
func (q LocationQuality) Weight() int { return int(q) }

func (q LocationQuality) String() string {
	switch q {
	case LocationExactAddress:
		return "exact_address"
	case LocationDistrictPartial:
		return "district_partial"
	case LocationCityOnly:
		return "city_only"
	default:
		return "none"
	}
}

// evaluateLocationMatch grades how well a listing's address matches the
// parsed query. The exact-address check short-circuits before the partial and
// city checks: a full compacted-string equality beats any substring evidence.
func evaluateLocationMatch(q ParsedLocationQuery, l *Listing) LocationQuality {
	if q.Raw == "" {
		return LocationNone
	}

	if q.Compact != "" {
		if addr := canon.Compact(l.AddressText); addr != "" && addr == q.Compact {
			return LocationExactAddress
		}
		if dc := canon.Compact(l.District + l.City); dc != "" && dc == q.Compact {
			return LocationExactAddress
		}
	}

	address := canon.Fold(l.AddressText)
	district := canon.Fold(l.District)
	for _, token := range q.Tokens {
		if token == q.City {
			continue
		}
		if (address != "" && strings.Contains(address, token)) ||
			(district != "" && strings.Contains(district, token)) {
			return LocationDistrictPartial
		}
	}

	if q.City != "" && strings.Contains(canon.Fold(l.City), q.City) {
		return LocationCityOnly
	}
	return LocationNone
}

// matchesPropertyType checks canonical type equality, with one asymmetry: a
// commercial request matches every commercial subtype, but a residential
// request never matches a commercial listing.
func matchesPropertyType(c Criteria, l *Listing) bool {
	if c.PropertyType == "" {
		return true
	}
	if c.IsCommercialSearch() {
		return l.IsCommercial()
	}
	return CanonicalType(l.PropertyType) == CanonicalType(c.PropertyType) && !l.IsCommercial()
}

// matchesFurnishing is vacuously true without a preference and always true
// for commercial listings, where furnishing is not a meaningful attribute.
func matchesFurnishing(c Criteria, l *Listing) bool {
	if c.Furnishing == "" || l.IsCommercial() {
		return true
	}
	return l.IsFurnished == (c.Furnishing == FurnishingFurnished)
}

// priceInRange requires a usable price; unpriced listings never pass.
func priceInRange(c Criteria, l *Listing) bool {
	p := l.Price()
	if !p.HasPrice {
		return false
	}
	if p.Amount < c.PriceMin {
		return false
	}
	if c.PriceMax > 0 && p.Amount > c.PriceMax {
		return false
	}
	return true
}

// roomScore grades how many of the requested room counts the listing covers,
// scaled to 0..6. A listing without a rooms record scores 0.
func roomScore(c Criteria, l *Listing) int {
	type want struct{ requested, actual int }
	var rooms Rooms
	if l.Rooms != nil {
		rooms = *l.Rooms
	}
	checks := []want{
		{c.Bedrooms, rooms.Bedrooms},
		{c.Bathrooms, rooms.Bathrooms},
		{c.Kitchens, rooms.Kitchen},
		{c.LivingRooms, rooms.LivingRoom},
	}
	requested, satisfied := 0, 0
	for _, w := range checks {
		if w.requested <= 0 {
			continue
		}
		requested++
		if w.actual >= w.requested {
			satisfied++
		}
	}
	if requested == 0 {
		return 0
	}
	return int(math.Round(6 * float64(satisfied) / float64(requested)))
}

// amenityScore grades requested-amenity coverage, scaled to 0..4. Amenity ids
// without a feature mapping count as satisfied rather than penalizing the
// listing for a request we cannot check.
func amenityScore(c Criteria, l *Listing) int {
	if len(c.Amenities) == 0 {
		return 0
	}
	satisfied := 0
	for _, id := range c.Amenities {
		check, ok := amenityChecks[id]
		if !ok {
			satisfied++
			continue
		}
		if l.Features != nil && check(l.Features) {
			satisfied++
		}
	}
	return int(math.Round(4 * float64(satisfied) / float64(len(c.Amenities))))
}

// surfaceScore grades commercial surface proximity: within a 15% tolerance
// band (at least 5 m²) earns the full bonus, within twice the band a reduced
// one. Applies only to commercial searches against commercial listings with a
// recoverable surface value.
func surfaceScore(c Criteria, l *Listing) int {
	if !c.IsCommercialSearch() || !l.IsCommercial() || c.SurfaceArea <= 0 {
		return 0
	}
	actual := l.SurfaceArea()
	if actual <= 0 {
		return 0
	}
	tolerance := math.Max(5, c.SurfaceArea*0.15)
	diff := math.Abs(actual - c.SurfaceArea)
	switch {
	case diff <= tolerance:
		return surfaceExactBonus
	case diff <= 2*tolerance:
		return surfaceNearBonus
	default:
		return 0
	}
}
