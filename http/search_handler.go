package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-search/internal/events"
	"github.com/yourorg/listing-search/internal/redisx"
	"github.com/yourorg/listing-search/internal/refresh"
	"github.com/yourorg/listing-search/internal/search"
	"github.com/yourorg/listing-search/internal/store"
)

type SearchDeps struct {
	Store     *store.Store
	Redis     *redisx.Client     // optional
	Refresher *refresh.Refresher // optional, requires Redis
	Pub       events.Publisher   // optional

	CacheTTL       time.Duration
	StaleAfter     time.Duration
	CandidateLimit int
}

// FlexAmount accepts a JSON number or a string like "150 000"; clients send
// both. Unparsable values decode to 0 (unset) rather than failing the request.
type FlexAmount float64

func (a *FlexAmount) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*a = FlexAmount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*a = FlexAmount(parseAmount(s))
	return nil
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

type SearchRequest struct {
	Location     string     `json:"location,omitempty"`
	PropertyType string     `json:"type,omitempty"`
	Furnishing   string     `json:"furnishing_type,omitempty"`
	PriceMin     FlexAmount `json:"price_min,omitempty"`
	PriceMax     FlexAmount `json:"price_max,omitempty"`
	Bedrooms     int        `json:"bedrooms,omitempty"`
	Bathrooms    int        `json:"bathrooms,omitempty"`
	Kitchens     int        `json:"kitchens,omitempty"`
	LivingRooms  int        `json:"living_rooms,omitempty"`
	Amenities    []string   `json:"amenities,omitempty"`
	SurfaceArea  FlexAmount `json:"surface_area,omitempty"`
}

func (b SearchRequest) toCriteria() search.Criteria {
	return search.Criteria{
		Location:     b.Location,
		PropertyType: b.PropertyType,
		Furnishing:   search.FurnishingPreference(b.Furnishing),
		PriceMin:     float64(b.PriceMin),
		PriceMax:     float64(b.PriceMax),
		Bedrooms:     b.Bedrooms,
		Bathrooms:    b.Bathrooms,
		Kitchens:     b.Kitchens,
		LivingRooms:  b.LivingRooms,
		Amenities:    b.Amenities,
		SurfaceArea:  float64(b.SurfaceArea),
	}
}

// cachedResult is the Redis envelope for one criteria hash.
type cachedResult struct {
	Result     search.Result `json:"result"`
	FetchedAt  time.Time     `json:"fetched_at"`
	StaleAfter time.Time     `json:"stale_after"`
}

func RegisterSearch(r chi.Router, d SearchDeps) {
	// POST: JSON body
	r.Post("/search", func(w http.ResponseWriter, req *http.Request) {
		var body SearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleSearchRequest(w, req, d, body)
	})

	// GET: query params (compatibility)
	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		body := SearchRequest{
			Location:     q.Get("location"),
			PropertyType: q.Get("type"),
			Furnishing:   q.Get("furnishing_type"),
			PriceMin:     FlexAmount(parseAmount(q.Get("price_min"))),
			PriceMax:     FlexAmount(parseAmount(q.Get("price_max"))),
			SurfaceArea:  FlexAmount(parseAmount(q.Get("surface_area"))),
		}
		if v := q.Get("bedrooms"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.Bedrooms = i
			}
		}
		if v := q.Get("bathrooms"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.Bathrooms = i
			}
		}
		if v := q.Get("kitchens"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.Kitchens = i
			}
		}
		if v := q.Get("living_rooms"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.LivingRooms = i
			}
		}
		if v := q.Get("amenities"); v != "" {
			for _, id := range strings.Split(v, ",") {
				if id = strings.TrimSpace(id); id != "" {
					body.Amenities = append(body.Amenities, id)
				}
			}
		}
		handleSearchRequest(w, req, d, body)
	})
}

func handleSearchRequest(w http.ResponseWriter, req *http.Request, d SearchDeps, body SearchRequest) {
	criteria := body.toCriteria()
	start := time.Now()
	ctx := req.Context()

	cacheKey := ""
	if d.Redis != nil {
		if key, err := redisx.SearchKey(criteria); err == nil {
			cacheKey = key
		}
	}

	if cacheKey != "" {
		var env cachedResult
		if ok, _ := d.Redis.GetJSON(ctx, cacheKey, &env); ok {
			stale := time.Now().After(env.StaleAfter)
			// fire-and-forget background refresh if stale
			if stale && d.Refresher != nil {
				d.Refresher.Enqueue(refresh.Job{CacheKey: cacheKey, Criteria: criteria})
			}
			d.publish(ctx, criteria, env.Result, start)
			render.JSON(w, req, map[string]any{
				"ok":          true,
				"source":      "cache",
				"stale":       stale,
				"count":       len(env.Result.Cards),
				"is_fallback": env.Result.IsFallback,
				"results":     env.Result.Cards,
			})
			return
		}
	}

	res, err := d.Run(ctx, criteria)
	if err != nil {
		render.Status(req, http.StatusBadGateway)
		render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
		return
	}

	if cacheKey != "" {
		env := cachedResult{Result: res, FetchedAt: time.Now()}
		env.StaleAfter = env.FetchedAt.Add(maxDur(d.StaleAfter, 30*time.Second))
		_ = d.Redis.SetJSON(ctx, cacheKey, env, maxDur(d.CacheTTL, 5*time.Minute))
	}

	d.publish(ctx, criteria, res, start)
	render.JSON(w, req, map[string]any{
		"ok":          true,
		"source":      "fresh",
		"stale":       false,
		"count":       len(res.Cards),
		"is_fallback": res.IsFallback,
		"results":     res.Cards,
	})
}

// Run fetches the published candidate set and scores it.
func (d SearchDeps) Run(ctx context.Context, criteria search.Criteria) (search.Result, error) {
	listings, err := d.Store.FetchPublished(ctx, d.CandidateLimit)
	if err != nil {
		return search.Result{}, err
	}
	return search.Search(criteria, listings), nil
}

// RunRefresh recomputes one cached result in the background.
func (d SearchDeps) RunRefresh(ctx context.Context, j refresh.Job) {
	res, err := d.Run(ctx, j.Criteria)
	if err != nil {
		return
	}
	env := cachedResult{Result: res, FetchedAt: time.Now()}
	env.StaleAfter = env.FetchedAt.Add(maxDur(d.StaleAfter, 30*time.Second))
	_ = d.Redis.SetJSON(ctx, j.CacheKey, env, maxDur(d.CacheTTL, 5*time.Minute))
}

func (d SearchDeps) publish(ctx context.Context, c search.Criteria, res search.Result, start time.Time) {
	if d.Pub == nil {
		return
	}
	d.Pub.PublishSearchPerformed(ctx, events.SearchPerformed{
		Query:        c.Location,
		PropertyType: c.PropertyType,
		ResultCount:  len(res.Cards),
		IsFallback:   res.IsFallback,
		Elapsed:      time.Since(start),
	})
}

func maxDur(a, b time.Duration) time.Duration {
	if a > 0 {
		return a
	}
	return b
}
