package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-search/internal/search"
	"github.com/yourorg/listing-search/internal/store"
)

type ListingsDeps struct {
	Store *store.Store
}

// ListingPayload is the wire form of one listing with its sub-records. Used
// by the ingest endpoint and the seeder fixtures.
type ListingPayload struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title"`
	PropertyType  string  `json:"property_type"`
	RentalKind    string  `json:"rental_kind,omitempty"`
	PricePerNight float64 `json:"price_per_night,omitempty"`
	PricePerMonth float64 `json:"price_per_month,omitempty"`
	City          string  `json:"city,omitempty"`
	District      string  `json:"district,omitempty"`
	AddressText   string  `json:"address_text,omitempty"`
	IsFurnished   bool    `json:"is_furnished,omitempty"`
	Capacity      int     `json:"capacity,omitempty"`
	CoverPhotoURL string  `json:"cover_photo_url,omitempty"`
	Status        string  `json:"status,omitempty"`

	Rooms    *RoomsPayload    `json:"rooms,omitempty"`
	Features *FeaturesPayload `json:"features,omitempty"`
	Media    []MediaPayload   `json:"media,omitempty"`
}

type RoomsPayload struct {
	Bedrooms   int `json:"bedrooms,omitempty"`
	Bathrooms  int `json:"bathrooms,omitempty"`
	Kitchen    int `json:"kitchen,omitempty"`
	LivingRoom int `json:"living_room,omitempty"`
	DiningRoom int `json:"dining_room,omitempty"`
	Toilets    int `json:"toilets,omitempty"`
}

type FeaturesPayload struct {
	HasAC          bool   `json:"has_ac,omitempty"`
	HasWifi        bool   `json:"has_wifi,omitempty"`
	HasParking     bool   `json:"has_parking,omitempty"`
	Generator      bool   `json:"generator,omitempty"`
	Housekeeping   bool   `json:"housekeeping,omitempty"`
	PrepayMeter    bool   `json:"prepay_meter,omitempty"`
	SonnelMeter    bool   `json:"sonnel_meter,omitempty"`
	WaterWell      bool   `json:"water_well,omitempty"`
	WaterHeater    bool   `json:"water_heater,omitempty"`
	SecurityGuard  bool   `json:"security_guard,omitempty"`
	CCTV           bool   `json:"cctv,omitempty"`
	Fan            bool   `json:"fan,omitempty"`
	TV             bool   `json:"tv,omitempty"`
	SmartTV        bool   `json:"smart_tv,omitempty"`
	Netflix        bool   `json:"netflix,omitempty"`
	WashingMachine bool   `json:"washing_machine,omitempty"`
	Balcony        bool   `json:"balcony,omitempty"`
	Terrace        bool   `json:"terrace,omitempty"`
	Veranda        bool   `json:"veranda,omitempty"`
	Mezzanine      bool   `json:"mezzanine,omitempty"`
	Garden         bool   `json:"garden,omitempty"`
	Pool           bool   `json:"pool,omitempty"`
	Gym            bool   `json:"gym,omitempty"`
	Rooftop        bool   `json:"rooftop,omitempty"`
	Elevator       bool   `json:"elevator,omitempty"`
	Accessible     bool   `json:"accessible,omitempty"`
	NearMainRoad   string `json:"near_main_road,omitempty"`
}

type MediaPayload struct {
	URL          string `json:"media_url"`
	MediaType    string `json:"media_type,omitempty"`
	Position     int    `json:"position,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// ToListing maps the wire payload onto the scoring model.
func (p ListingPayload) ToListing() *search.Listing {
	l := &search.Listing{
		ID:            p.ID,
		Title:         p.Title,
		PropertyType:  p.PropertyType,
		RentalKind:    p.RentalKind,
		PricePerNight: p.PricePerNight,
		PricePerMonth: p.PricePerMonth,
		City:          p.City,
		District:      p.District,
		AddressText:   p.AddressText,
		IsFurnished:   p.IsFurnished,
		Capacity:      p.Capacity,
		CoverPhotoURL: p.CoverPhotoURL,
		Status:        p.Status,
	}
	if l.RentalKind == "" {
		l.RentalKind = search.RentalKindLongTerm
	}
	if l.Status == "" {
		l.Status = "published"
	}
	if p.Rooms != nil {
		l.Rooms = &search.Rooms{
			Bedrooms:   p.Rooms.Bedrooms,
			Bathrooms:  p.Rooms.Bathrooms,
			Kitchen:    p.Rooms.Kitchen,
			LivingRoom: p.Rooms.LivingRoom,
			DiningRoom: p.Rooms.DiningRoom,
			Toilets:    p.Rooms.Toilets,
		}
	}
	if p.Features != nil {
		f := p.Features
		l.Features = &search.Features{
			HasAC: f.HasAC, HasWifi: f.HasWifi, HasParking: f.HasParking,
			Generator: f.Generator, Housekeeping: f.Housekeeping,
			PrepayMeter: f.PrepayMeter, SonnelMeter: f.SonnelMeter,
			WaterWell: f.WaterWell, WaterHeater: f.WaterHeater,
			SecurityGuard: f.SecurityGuard, CCTV: f.CCTV, Fan: f.Fan,
			TV: f.TV, SmartTV: f.SmartTV, Netflix: f.Netflix,
			WashingMachine: f.WashingMachine, Balcony: f.Balcony,
			Terrace: f.Terrace, Veranda: f.Veranda, Mezzanine: f.Mezzanine,
			Garden: f.Garden, Pool: f.Pool, Gym: f.Gym, Rooftop: f.Rooftop,
			Elevator: f.Elevator, Accessible: f.Accessible,
			NearMainRoad: f.NearMainRoad,
		}
	}
	for _, m := range p.Media {
		mediaType := m.MediaType
		if mediaType == "" {
			mediaType = "photo"
		}
		l.Media = append(l.Media, search.MediaItem{
			URL:          m.URL,
			MediaType:    mediaType,
			Position:     m.Position,
			ThumbnailURL: m.ThumbnailURL,
		})
	}
	return l
}

func RegisterListings(r chi.Router, d ListingsDeps) {
	// Ingest: upsert one listing with sub-records. Backoffice-facing.
	r.Post("/internal/listings", func(w http.ResponseWriter, req *http.Request) {
		var body ListingPayload
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if body.Title == "" || body.PropertyType == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "fields_required", "detail": "title and property_type are required"})
			return
		}
		id, err := d.Store.UpsertListing(req.Context(), body.ToListing())
		if err != nil {
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
			return
		}
		render.JSON(w, req, map[string]any{"ok": true, "id": id})
	})

	// Published candidate count, mostly for smoke checks.
	r.Get("/listings", func(w http.ResponseWriter, req *http.Request) {
		limit := 0
		if v := req.URL.Query().Get("limit"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				limit = i
			}
		}
		listings, err := d.Store.FetchPublished(req.Context(), limit)
		if err != nil {
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
			return
		}
		render.JSON(w, req, map[string]any{"ok": true, "count": len(listings)})
	})
}
