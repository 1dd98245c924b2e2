package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-search/internal/store"
	"github.com/yourorg/listing-search/internal/suggest"
	"github.com/yourorg/listing-search/places"
)

type SuggestDeps struct {
	Store  *store.Store
	Places *places.Client // optional, external predictions skipped when nil
}

// sanitizeSuggestQuery strips SQL wildcard characters before the ILIKE pass.
func sanitizeSuggestQuery(raw string) string {
	return strings.TrimSpace(strings.NewReplacer("%", "", "_", "").Replace(raw))
}

func RegisterSuggest(r chi.Router, d SuggestDeps) {
	r.Get("/search/suggest", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		query := sanitizeSuggestQuery(q.Get("q"))
		if query == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "query_required", "detail": "q is required"})
			return
		}
		limit := 8
		if v := q.Get("limit"); v != "" {
			if i, err := strconv.Atoi(v); err == nil && i > 0 && i <= 25 {
				limit = i
			}
		}

		ctx := req.Context()
		rows, err := d.Store.FetchAddresses(ctx, query, 60)
		if err != nil {
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
			return
		}
		records := make([]suggest.AddressRecord, 0, len(rows))
		for _, r := range rows {
			records = append(records, suggest.AddressRecord{
				AddressText: r.AddressText,
				District:    r.District,
				City:        r.City,
			})
		}
		internal := suggest.FromAddresses(query, records, limit)

		// External predictions are best-effort; a Places outage never fails
		// the endpoint.
		var external []places.Suggestion
		if d.Places != nil {
			if preds, err := d.Places.Autocomplete(ctx, query, q.Get("session")); err == nil {
				external = preds
			}
		}

		merged := suggest.Merge(internal, external, limit)
		render.JSON(w, req, map[string]any{
			"ok":          true,
			"count":       len(merged),
			"suggestions": merged,
		})
	})
}
