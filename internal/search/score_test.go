package search

import "testing"

func TestDamp(t *testing.T) {
	tests := []struct {
		name      string
		penalized bool
		v, floor  int
		want      int
	}{
		{"no penalty passes through", false, 35, 10, 35},
		{"halved", true, 35, 10, 17},
		{"floored", true, 12, 8, 8},
		{"floor never exceeds original", true, 5, 10, 5},
		{"combined bonus floor", true, 18, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := damp(tt.penalized, tt.v, tt.floor); got != tt.want {
				t.Errorf("damp(%v, %d, %d) = %d, want %d", tt.penalized, tt.v, tt.floor, got, tt.want)
			}
		})
	}
}

func TestScoreResidentialFullMatch(t *testing.T) {
	c := Criteria{
		Location:     "Bonapriso, Douala",
		PropertyType: "apartment",
		Furnishing:   FurnishingFurnished,
		PriceMin:     100000,
		PriceMax:     300000,
	}
	l := &Listing{
		PropertyType:  "apartment",
		RentalKind:    RentalKindLongTerm,
		PricePerMonth: 200000,
		AddressText:   "Rue Tokoto, Bonapriso, Douala",
		District:      "Bonapriso",
		City:          "Douala",
		IsFurnished:   true,
		Capacity:      2,
	}
	// 15 base + 47 exact + 35 furnishing + 27 type + 18 combo + 12 price + 2 capacity = 156 → clamp 99
	got := scoreResidential(c, l, LocationExactAddress, true, true)
	if got != 99 {
		t.Errorf("score = %d, want clamp at 99", got)
	}
}

func TestScoreResidentialLocationPenalty(t *testing.T) {
	c := Criteria{
		Location:     "Bastos, Yaoundé",
		PropertyType: "apartment",
		Furnishing:   FurnishingFurnished,
	}
	l := &Listing{
		PropertyType: "apartment",
		District:     "Akwa",
		City:         "Douala",
		IsFurnished:  true,
	}
	// 15 base + 0 location + 17 furnishing + 13 type + 10 combo, no price
	got := scoreResidential(c, l, LocationNone, true, true)
	want := 15 + 17 + 13 + 10
	if got != want {
		t.Errorf("penalized score = %d, want %d", got, want)
	}

	// Same listing with location satisfied collects full bonuses:
	// 15 + 37 + 35 + 27 + 18 = 132, clamped to 99.
	if full := scoreResidential(c, l, LocationDistrictPartial, true, true); full != 99 {
		t.Errorf("unpenalized score = %d, want 99", full)
	}
}

func TestScoreResidentialTypeNeutral(t *testing.T) {
	c := Criteria{PropertyType: "studio"}
	villa := &Listing{PropertyType: "villa"}
	// 15 base + 12 furnishing ambient + 14 neutral type
	got := scoreResidential(c, villa, LocationNone, false, true)
	want := 15 + 12 + 14
	if got != want {
		t.Errorf("neutral type score = %d, want %d", got, want)
	}

	// Commercial listings collect nothing for type in a residential search.
	shop := &Listing{PropertyType: "boutique"}
	got = scoreResidential(c, shop, LocationNone, false, true)
	want = 15 + 12
	if got != want {
		t.Errorf("commercial-in-residential score = %d, want %d", got, want)
	}
}

func TestScoreResidentialPriceWeighting(t *testing.T) {
	inRange := &Listing{RentalKind: RentalKindLongTerm, PricePerMonth: 150000}
	outOfRange := &Listing{RentalKind: RentalKindLongTerm, PricePerMonth: 500000}
	unpriced := &Listing{RentalKind: RentalKindLongTerm}

	base := Criteria{PriceMax: 200000}
	prioritized := Criteria{PriceMax: 200000, Furnishing: FurnishingFurnished}

	delta := func(c Criteria, l *Listing) int {
		return scoreResidential(c, l, LocationNone, true, true) -
			scoreResidential(c, unpriced, LocationNone, true, true)
	}

	if got := delta(base, inRange); got != priceBonus {
		t.Errorf("in-range delta = %d, want %d", got, priceBonus)
	}
	if got := delta(base, outOfRange); got != -pricePenalty {
		t.Errorf("out-of-range delta = %d, want %d", got, -pricePenalty)
	}
	if got := delta(prioritized, inRange); got != priceBonusPrioritized {
		t.Errorf("prioritized in-range delta = %d, want %d", got, priceBonusPrioritized)
	}
	if got := delta(prioritized, outOfRange); got != -pricePenaltyPrioritized {
		t.Errorf("prioritized out-of-range delta = %d, want %d", got, -pricePenaltyPrioritized)
	}
}

func TestScoreCommercial(t *testing.T) {
	c := Criteria{
		Location:     "Akwa, Douala",
		PropertyType: "boutique",
		SurfaceArea:  85,
		PriceMax:     500000,
		Amenities:    []string{"parking", "generator"},
	}
	l := &Listing{
		PropertyType:  "magasin",
		RentalKind:    RentalKindLongTerm,
		PricePerMonth: 300000,
		District:      "Akwa",
		City:          "Douala",
		Features:      &Features{HasParking: true, Generator: true},
		Media:         []MediaItem{{ThumbnailURL: "85"}},
	}
	// 35 type + 25 district + 25 surface + 10 price + 8 amenities = 103 → clamp 99
	got := scoreCommercial(c, l, LocationDistrictPartial, true)
	if got != 99 {
		t.Errorf("score = %d, want clamp at 99", got)
	}

	// Without a location filter no location bonus is paid.
	noLoc := c
	noLoc.Location = ""
	got = scoreCommercial(noLoc, l, LocationDistrictPartial, true)
	want := 35 + 25 + 10 + 8
	if got != want {
		t.Errorf("no-filter score = %d, want %d", got, want)
	}
}

func TestScoreBounds(t *testing.T) {
	listings := []*Listing{
		{},
		{PropertyType: "boutique"},
		{PropertyType: "villa", IsFurnished: true, Capacity: 12, RentalKind: RentalKindLongTerm, PricePerMonth: 1},
	}
	criteria := []Criteria{
		{},
		{Location: "Bastos, Yaoundé", PropertyType: "apartment", Furnishing: FurnishingUnfurnished, PriceMin: 9e9},
		{PropertyType: "boutique", SurfaceArea: 50},
	}
	for _, c := range criteria {
		for _, l := range listings {
			for _, q := range []LocationQuality{LocationNone, LocationCityOnly, LocationDistrictPartial, LocationExactAddress} {
				var s int
				if c.IsCommercialSearch() {
					s = scoreCommercial(c, l, q, true)
				} else {
					s = scoreResidential(c, l, q, true, true)
				}
				if s < 0 || s > 99 {
					t.Fatalf("score %d out of [0,99] for criteria %+v listing %+v quality %v", s, c, l, q)
				}
			}
		}
	}
}
