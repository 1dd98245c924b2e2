package search

import (
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/listing-search/internal/canon"
)

// Canonical property types. Every stored free-text type value maps onto one
// of these; see CanonicalType.
const (
	TypeStudio    = "studio"
	TypeRoom      = "chambre"
	TypeApartment = "apartment"
	TypeHouse     = "house"
	TypeVilla     = "villa"
	TypeBoutique  = "boutique"
)

const RentalKindLongTerm = "long_term"

// Listing is one candidate row as fetched from the listing source. Rooms,
// Features and Media may be nil/empty; evaluators treat missing sub-records
// as zero contribution.
type Listing struct {
	ID            string
	Title         string
	PropertyType  string
	RentalKind    string
	PricePerNight float64
	PricePerMonth float64
	City          string
	District      string
	AddressText   string
	IsFurnished   bool
	Capacity      int
	CoverPhotoURL string
	CreatedAt     time.Time
	Status        string

	Rooms    *Rooms
	Features *Features
	Media    []MediaItem
}

type Rooms struct {
	Bedrooms   int
	Bathrooms  int
	Kitchen    int
	LivingRoom int
	DiningRoom int
	Toilets    int
}

// Features mirrors the listing_features row: boolean amenity flags plus the
// near-main-road distance enum ("roadside", "within_50m", "within_100m",
// "beyond_200m" or empty).
type Features struct {
	HasAC          bool
	HasWifi        bool
	HasParking     bool
	Generator      bool
	Housekeeping   bool
	PrepayMeter    bool
	SonnelMeter    bool
	WaterWell      bool
	WaterHeater    bool
	SecurityGuard  bool
	CCTV           bool
	Fan            bool
	TV             bool
	SmartTV        bool
	Netflix        bool
	WashingMachine bool
	Balcony        bool
	Terrace        bool
	Veranda        bool
	Mezzanine      bool
	Garden         bool
	Pool           bool
	Gym            bool
	Rooftop        bool
	Elevator       bool
	Accessible     bool
	NearMainRoad   string
}

type MediaItem struct {
	URL          string
	MediaType    string // "photo" or "video"
	Position     int
	ThumbnailURL string // commercial listings piggyback their surface (m²) here
}

// typeAliases maps folded, punctuation-stripped stored type values to
// canonical types. The table is deliberately exhaustive over everything hosts
// have typed into the field.
var typeAliases = map[string]string{
	"studio":  TypeStudio,
	"studios": TypeStudio,

	"chambre":  TypeRoom,
	"chambres": TypeRoom,
	"room":     TypeRoom,

	"appart":       TypeApartment,
	"apparts":      TypeApartment,
	"appartement":  TypeApartment,
	"appartements": TypeApartment,
	"apartment":    TypeApartment,
	"apartments":   TypeApartment,
	"flat":         TypeApartment,

	"maison":     TypeHouse,
	"maisons":    TypeHouse,
	"house":      TypeHouse,
	"duplex":     TypeHouse,
	"triplex":    TypeHouse,
	"penthouse":  TypeHouse,
	"concession": TypeHouse,

	"villa":  TypeVilla,
	"villas": TypeVilla,

	"boutique":            TypeBoutique,
	"boutiques":           TypeBoutique,
	"magasin":             TypeBoutique,
	"magasins":            TypeBoutique,
	"espace commercial":   TypeBoutique,
	"espaces commerciaux": TypeBoutique,
	"local commercial":    TypeBoutique,
	"bureau":              TypeBoutique,
	"bureaux":             TypeBoutique,
	"commerce":            TypeBoutique,
	"shop":                TypeBoutique,
	"store":               TypeBoutique,
	"terrain":             TypeBoutique,
}

// CanonicalType resolves a stored property-type value to its canonical key.
// Matching ignores accents, case and punctuation ("APPART. meublé" resolves
// to apartment). Unrecognized values default to apartment — the most common
// type — rather than erroring on host typos.
func CanonicalType(raw string) string {
	folded := canon.FoldBare(raw)
	if folded == "" {
		return TypeApartment
	}
	if t, ok := typeAliases[folded]; ok {
		return t
	}
	// "appart meuble", "grande villa bord de mer" and friends: fall back to
	// the first word that resolves on its own.
	for _, word := range strings.Fields(folded) {
		if t, ok := typeAliases[word]; ok {
			return t
		}
	}
	return TypeApartment
}

// IsCommercial reports whether the listing belongs to the commercial category.
func (l *Listing) IsCommercial() bool {
	return CanonicalType(l.PropertyType) == TypeBoutique
}

// PriceInfo is the usable price of a listing given its rental kind.
type PriceInfo struct {
	Amount      float64
	PeriodLabel string
	HasPrice    bool
}

// Price selects the monthly price for long-term rentals and the nightly price
// otherwise. A zero or missing amount yields HasPrice=false so the listing is
// never silently treated as in-range.
func (l *Listing) Price() PriceInfo {
	if l.RentalKind == RentalKindLongTerm {
		return PriceInfo{Amount: l.PricePerMonth, PeriodLabel: "par mois", HasPrice: l.PricePerMonth > 0}
	}
	return PriceInfo{Amount: l.PricePerNight, PeriodLabel: "par nuit", HasPrice: l.PricePerNight > 0}
}

// SurfaceArea recovers the commercial surface value piggybacked in the first
// media row's thumbnail field. Returns 0 when no usable value exists.
func (l *Listing) SurfaceArea() float64 {
	if !l.IsCommercial() || len(l.Media) == 0 {
		return 0
	}
	raw := strings.TrimSpace(l.Media[0].ThumbnailURL)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
