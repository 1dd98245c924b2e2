package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display strings are French: the product ships to a francophone market and
// the card fields are rendered verbatim by clients.
const (
	labelFurnished      = "Meublé"
	labelUnfurnished    = "Non meublé"
	labelNoLocation     = "Localisation à venir"
	labelPriceOnAsk     = "Tarif sur demande"
	labelRentOnAsk      = "Loyer sur demande"
	labelSurfaceFlexMsg = "Surface ajustable"

	fallbackCoverURL = "https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e?w=1080&fit=crop&q=80&auto=format"
)

var typeLabels = map[string]string{
	TypeStudio:    "Studio",
	TypeRoom:      "Chambre",
	TypeApartment: "Appartement",
	TypeHouse:     "Maison",
	TypeVilla:     "Villa",
	TypeBoutique:  "Boutique",
}

// Card is one display-ready search result. Pure projection of a ranked
// listing, no matching logic.
type Card struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	PropertyType     string   `json:"property_type"`
	FurnishingLabel  string   `json:"furnishing_label"`
	City             string   `json:"city"`
	District         string   `json:"district"`
	LocationLabel    string   `json:"location_label"`
	PriceDisplay     string   `json:"price_display"`
	PricePeriodLabel string   `json:"price_period_label"`
	Image            string   `json:"image"`
	Badges           []string `json:"badges"`
	Hashtags         []string `json:"hashtags"`
	Bedrooms         int      `json:"bedrooms"`
	Bathrooms        int      `json:"bathrooms"`
	Kitchens         int      `json:"kitchens"`
	SurfaceAreaLabel string   `json:"surface_area_label,omitempty"`
	MatchScore       int      `json:"match_score"`
}

// formatFCFA renders an amount with French thousands grouping: 150 000 FCFA.
func formatFCFA(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(amount)), 10)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out + " FCFA"
}

func priceDisplay(l *Listing) (display, period string) {
	p := l.Price()
	if !p.HasPrice {
		if l.RentalKind == RentalKindLongTerm {
			return labelRentOnAsk, ""
		}
		return labelPriceOnAsk, ""
	}
	return formatFCFA(p.Amount), p.PeriodLabel
}

func locationLabel(l *Listing) string {
	var parts []string
	for _, p := range []string{l.District, l.City} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if s := strings.TrimSpace(l.AddressText); s != "" {
		return s
	}
	return labelNoLocation
}

func coverImage(l *Listing) string {
	if l.CoverPhotoURL != "" {
		return l.CoverPhotoURL
	}
	for _, m := range l.Media {
		if m.MediaType == "photo" && m.URL != "" {
			return m.URL
		}
	}
	return fallbackCoverURL
}

func surfaceAreaLabel(l *Listing) string {
	if !l.IsCommercial() {
		return ""
	}
	if s := l.SurfaceArea(); s > 0 {
		return fmt.Sprintf("%s m²", strconv.FormatFloat(s, 'f', -1, 64))
	}
	return labelSurfaceFlexMsg
}

func buildHashtags(l *Listing, typeLabel string) []string {
	tags := []string{"#" + typeLabel}
	if c := strings.TrimSpace(l.City); c != "" {
		tags = append(tags, "#"+c)
	}
	if d := strings.TrimSpace(l.District); d != "" {
		tags = append(tags, "#"+d)
	}
	if !l.IsCommercial() {
		if l.IsFurnished {
			tags = append(tags, "#Meublé")
		} else {
			tags = append(tags, "#NonMeublé")
		}
	}
	if l.RentalKind == RentalKindLongTerm {
		tags = append(tags, "#LongSéjour")
	} else {
		tags = append(tags, "#CourteDurée")
	}
	return tags
}

// BuildCard projects one ranked evaluation into its display card.
func BuildCard(ev Evaluation) Card {
	l := ev.Listing
	canonical := CanonicalType(l.PropertyType)
	typeLabel := typeLabels[canonical]

	furnishing := labelUnfurnished
	if l.IsFurnished {
		furnishing = labelFurnished
	}

	badges := []string{typeLabel, furnishing}
	surface := surfaceAreaLabel(l)
	if surface != "" {
		badges = append(badges, surface)
	}

	display, period := priceDisplay(l)

	var rooms Rooms
	if l.Rooms != nil {
		rooms = *l.Rooms
	}

	return Card{
		ID:               l.ID,
		Title:            l.Title,
		PropertyType:     canonical,
		FurnishingLabel:  furnishing,
		City:             l.City,
		District:         l.District,
		LocationLabel:    locationLabel(l),
		PriceDisplay:     display,
		PricePeriodLabel: period,
		Image:            coverImage(l),
		Badges:           badges,
		Hashtags:         buildHashtags(l, typeLabel),
		Bedrooms:         rooms.Bedrooms,
		Bathrooms:        rooms.Bathrooms,
		Kitchens:         rooms.Kitchen,
		SurfaceAreaLabel: surface,
		MatchScore:       ev.Score,
	}
}
