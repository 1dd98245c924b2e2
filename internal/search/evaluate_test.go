package search

import "testing"

func TestEvaluateLocationMatch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		listing Listing
		want    LocationQuality
	}{
		{
			name:    "exact address equality",
			query:   "Rue Tokoto, Bonapriso, Douala",
			listing: Listing{AddressText: "rue tokoto bonapriso douala"},
			want:    LocationExactAddress,
		},
		{
			name:    "exact district plus city",
			query:   "Bonapriso, Douala",
			listing: Listing{District: "Bonapriso", City: "Douala"},
			want:    LocationExactAddress,
		},
		{
			name:    "district token in address",
			query:   "Bonapriso, Douala",
			listing: Listing{AddressText: "Rue Tokoto, Bonapriso", City: "Douala"},
			want:    LocationDistrictPartial,
		},
		{
			name:    "city only",
			query:   "Bonapriso, Douala",
			listing: Listing{District: "Akwa", City: "Douala"},
			want:    LocationCityOnly,
		},
		{
			name:    "no overlap",
			query:   "Bastos, Yaoundé",
			listing: Listing{District: "Akwa", City: "Douala"},
			want:    LocationNone,
		},
		{
			name:    "accent insensitive",
			query:   "Yaoundé",
			listing: Listing{District: "Yaounde Centre"},
			want:    LocationDistrictPartial,
		},
		{
			name:    "empty query",
			query:   "",
			listing: Listing{City: "Douala"},
			want:    LocationNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseLocationQuery(tt.query)
			if got := evaluateLocationMatch(q, &tt.listing); got != tt.want {
				t.Errorf("quality = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesPropertyType(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		listing  Listing
		want     bool
	}{
		{"no preference matches anything", Criteria{}, Listing{PropertyType: "villa"}, true},
		{"direct match", Criteria{PropertyType: "apartment"}, Listing{PropertyType: "appartement"}, true},
		{"commercial request matches any subtype", Criteria{PropertyType: "boutique"}, Listing{PropertyType: "magasin"}, true},
		{"commercial request rejects residential", Criteria{PropertyType: "boutique"}, Listing{PropertyType: "villa"}, false},
		{"residential request rejects commercial", Criteria{PropertyType: "apartment"}, Listing{PropertyType: "bureau"}, false},
		{"different residential types", Criteria{PropertyType: "studio"}, Listing{PropertyType: "villa"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesPropertyType(tt.criteria, &tt.listing); got != tt.want {
				t.Errorf("matchesPropertyType = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesFurnishing(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		listing  Listing
		want     bool
	}{
		{"unset is vacuous", Criteria{}, Listing{IsFurnished: false}, true},
		{"furnished match", Criteria{Furnishing: FurnishingFurnished}, Listing{IsFurnished: true}, true},
		{"furnished mismatch", Criteria{Furnishing: FurnishingFurnished}, Listing{IsFurnished: false}, false},
		{"unfurnished match", Criteria{Furnishing: FurnishingUnfurnished}, Listing{IsFurnished: false}, true},
		{"commercial always matches", Criteria{Furnishing: FurnishingFurnished}, Listing{PropertyType: "boutique", IsFurnished: false}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesFurnishing(tt.criteria, &tt.listing); got != tt.want {
				t.Errorf("matchesFurnishing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceInRange(t *testing.T) {
	priced := Listing{RentalKind: RentalKindLongTerm, PricePerMonth: 150000}
	tests := []struct {
		name     string
		criteria Criteria
		listing  Listing
		want     bool
	}{
		{"open range", Criteria{}, priced, true},
		{"within bounds", Criteria{PriceMin: 100000, PriceMax: 200000}, priced, true},
		{"below min", Criteria{PriceMin: 200000}, priced, false},
		{"above max", Criteria{PriceMax: 100000}, priced, false},
		{"zero max is unbounded", Criteria{PriceMin: 100000}, priced, true},
		{"unpriced never passes", Criteria{}, Listing{RentalKind: RentalKindLongTerm}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priceInRange(tt.criteria, &tt.listing); got != tt.want {
				t.Errorf("priceInRange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoomScore(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		rooms    *Rooms
		want     int
	}{
		{"nothing requested", Criteria{}, &Rooms{Bedrooms: 3}, 0},
		{"all satisfied", Criteria{Bedrooms: 2, Bathrooms: 1}, &Rooms{Bedrooms: 3, Bathrooms: 1}, 6},
		{"half satisfied", Criteria{Bedrooms: 2, Bathrooms: 2}, &Rooms{Bedrooms: 3, Bathrooms: 1}, 3},
		{"quarter rounds to two", Criteria{Bedrooms: 1, Bathrooms: 2, Kitchens: 2, LivingRooms: 2}, &Rooms{Bedrooms: 1}, 2},
		{"missing sub-record scores zero", Criteria{Bedrooms: 2}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Listing{Rooms: tt.rooms}
			if got := roomScore(tt.criteria, &l); got != tt.want {
				t.Errorf("roomScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAmenityScore(t *testing.T) {
	features := &Features{HasAC: true, HasWifi: true, NearMainRoad: "within_50m"}
	tests := []struct {
		name      string
		amenities []string
		want      int
	}{
		{"none requested", nil, 0},
		{"all satisfied", []string{"ac", "wifi"}, 4},
		{"half satisfied", []string{"ac", "pool"}, 2},
		{"unknown id counts as satisfied", []string{"ac", "heliport"}, 4},
		{"road amenity checks truthiness", []string{"road-50"}, 4},
		{"road amenity any distance", []string{"road-200"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Listing{Features: features}
			if got := amenityScore(Criteria{Amenities: tt.amenities}, &l); got != tt.want {
				t.Errorf("amenityScore = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("nil features fail mapped checks", func(t *testing.T) {
		l := Listing{}
		if got := amenityScore(Criteria{Amenities: []string{"ac"}}, &l); got != 0 {
			t.Errorf("amenityScore = %d, want 0", got)
		}
	})
}

func TestSurfaceScore(t *testing.T) {
	shop := func(surface string) Listing {
		return Listing{PropertyType: "boutique", Media: []MediaItem{{ThumbnailURL: surface}}}
	}
	tests := []struct {
		name     string
		criteria Criteria
		listing  Listing
		want     int
	}{
		{"within tolerance", Criteria{PropertyType: "boutique", SurfaceArea: 85}, shop("90"), 25},
		{"within double tolerance", Criteria{PropertyType: "boutique", SurfaceArea: 85}, shop("105"), 15},
		{"too far", Criteria{PropertyType: "boutique", SurfaceArea: 85}, shop("200"), 0},
		{"small request uses 5m2 floor", Criteria{PropertyType: "boutique", SurfaceArea: 10}, shop("14"), 25},
		{"residential request ignored", Criteria{PropertyType: "villa", SurfaceArea: 85}, shop("85"), 0},
		{"no requested surface", Criteria{PropertyType: "boutique"}, shop("85"), 0},
		{"no recoverable surface", Criteria{PropertyType: "boutique", SurfaceArea: 85}, shop(""), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := surfaceScore(tt.criteria, &tt.listing); got != tt.want {
				t.Errorf("surfaceScore = %d, want %d", got, tt.want)
			}
		})
	}
}
