package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/yourorg/listing-search/http"
)

func BuildRouter(search httpapi.SearchDeps, suggest httpapi.SuggestDeps, listings httpapi.ListingsDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect db and Places quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterSearch(r, search)
	httpapi.RegisterSuggest(r, suggest)
	httpapi.RegisterListings(r, listings)

	return r
}
