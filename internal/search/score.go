package search

// Scoring weights. Residential location bonuses run higher than commercial
// ones: address precision matters more for long stays than for shopfronts.
const (
	scoreMax = 99

	residentialBase          = 15
	residentialLocExact      = 47
	residentialLocDistrict   = 37
	residentialLocCity       = 22
	residentialFurnishMatch  = 35
	residentialFurnishMiss   = 5
	residentialFurnishUnset  = 12
	residentialTypeMatch     = 27
	residentialTypeNeutral   = 14
	residentialTypeNeutralLo = 12
	residentialCombo         = 18
	residentialCapacityMax   = 4

	commercialTypeMatch   = 35
	commercialLocExact    = 35
	commercialLocDistrict = 25
	commercialLocCity     = 15
	commercialPriceBonus  = 10
	commercialAmenityMax  = 8

	surfaceExactBonus = 25
	surfaceNearBonus  = 15

	priceBonusPrioritized   = 12
	pricePenaltyPrioritized = 6
	priceBonus              = 8
	pricePenalty            = 4
)

// damp halves a bonus when the location penalty applies, flooring the halved
// value at floor but never raising it above the original. Listings that miss
// an explicit location filter outright should not collect full credit for
// matching everything else.
func damp(penalized bool, v, floor int) int {
	if !penalized {
		return v
	}
	h := v / 2
	if h < floor {
		h = floor
	}
	if h > v {
		h = v
	}
	return h
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > scoreMax {
		return scoreMax
	}
	return s
}

// scoreResidential computes the residential-mode score for one listing.
// quality is the precomputed location tier; typeOK and furnOK the precomputed
// match booleans.
func scoreResidential(c Criteria, l *Listing, quality LocationQuality, typeOK, furnOK bool) int {
	score := residentialBase
	hasLoc := c.HasLocationFilter()

	if hasLoc {
		switch quality {
		case LocationExactAddress:
			score += residentialLocExact
		case LocationDistrictPartial:
			score += residentialLocDistrict
		case LocationCityOnly:
			score += residentialLocCity
		}
	}
	penalized := hasLoc && quality == LocationNone

	if c.Furnishing != "" {
		if furnOK {
			score += damp(penalized, residentialFurnishMatch, 10)
		} else {
			score += damp(penalized, residentialFurnishMiss, 10)
		}
	} else {
		score += damp(penalized, residentialFurnishUnset, 8)
	}

	commercial := l.IsCommercial()
	switch {
	case c.PropertyType != "" && typeOK:
		score += damp(penalized, residentialTypeMatch, 10)
	case commercial:
		// A commercial listing in a residential search earns nothing for type.
	default:
		neutral := damp(penalized, residentialTypeNeutral, 10)
		if neutral < residentialTypeNeutralLo {
			neutral = residentialTypeNeutralLo
		}
		score += neutral
	}

	if c.PropertyType != "" && typeOK && furnOK {
		score += damp(penalized, residentialCombo, 10)
	}

	if l.Price().HasPrice {
		bonus, penalty := priceBonus, pricePenalty
		if c.Furnishing == FurnishingFurnished {
			bonus, penalty = priceBonusPrioritized, pricePenaltyPrioritized
		}
		if priceInRange(c, l) {
			score += bonus
		} else {
			score -= penalty
		}
	}

	score += roomScore(c, l)
	score += amenityScore(c, l)
	if seats := l.Capacity; seats > 0 {
		if seats > residentialCapacityMax {
			seats = residentialCapacityMax
		}
		score += seats
	}
	score += surfaceScore(c, l)

	return clampScore(score)
}

// scoreCommercial computes the commercial-mode score for one listing. Flat
// additive bonuses, no penalty dampening.
func scoreCommercial(c Criteria, l *Listing, quality LocationQuality, typeOK bool) int {
	score := 0
	if typeOK {
		score += commercialTypeMatch
	}
	if c.HasLocationFilter() {
		switch quality {
		case LocationExactAddress:
			score += commercialLocExact
		case LocationDistrictPartial:
			score += commercialLocDistrict
		case LocationCityOnly:
			score += commercialLocCity
		}
	}
	score += surfaceScore(c, l)
	if priceInRange(c, l) {
		score += commercialPriceBonus
	}
	if a := 2 * amenityScore(c, l); a > 0 {
		if a > commercialAmenityMax {
			a = commercialAmenityMax
		}
		score += a
	}
	return clampScore(score)
}
