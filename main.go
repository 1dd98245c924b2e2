package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	httpapi "github.com/yourorg/listing-search/http"
	"github.com/yourorg/listing-search/internal/analytics"
	"github.com/yourorg/listing-search/internal/env"
	"github.com/yourorg/listing-search/internal/events"
	"github.com/yourorg/listing-search/internal/logger"
	"github.com/yourorg/listing-search/internal/redisx"
	"github.com/yourorg/listing-search/internal/refresh"
	"github.com/yourorg/listing-search/internal/store"
	"github.com/yourorg/listing-search/places"
)

func main() {
	// best-effort: local dev keeps its config in .env, deploys use real env
	_ = godotenv.Load()

	port := env.GetInt("PORT", 4002)
	dsn := env.Must("PG_DSN")

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("postgres ping error: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("postgres migrate error: %v", err)
	}
	cancel()

	var redisClient *redisx.Client
	if addr := env.Get("REDIS_ADDR", ""); addr != "" {
		redisClient = redisx.New(addr, env.Get("REDIS_PASSWORD", ""), env.GetInt("REDIS_DB", 0))
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx); err != nil {
			log.Printf("redis unavailable, caching disabled: %v", err)
			redisClient = nil
		}
		pingCancel()
	}

	var placesClient *places.Client
	if key := env.Get("GOOGLE_PLACES_API_KEY", ""); key != "" {
		placesClient = places.NewClient(key)
	} else {
		log.Print("GOOGLE_PLACES_API_KEY not set, external suggestions disabled")
	}

	pub := events.NewInMemory(env.GetInt("EVENTS_BUFFER", 256))
	rec := &analytics.Recorder{Pub: pub}
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	go rec.Run(runCtx)

	searchDeps := httpapi.SearchDeps{
		Store:          st,
		Redis:          redisClient,
		Pub:            pub,
		CacheTTL:       env.GetDuration("SEARCH_CACHE_TTL", 5*time.Minute),
		StaleAfter:     env.GetDuration("SEARCH_STALE_AFTER", 30*time.Second),
		CandidateLimit: env.GetInt("SEARCH_CANDIDATE_LIMIT", 80),
	}
	if redisClient != nil {
		searchDeps.Refresher = refresh.New(
			env.GetInt("REFRESH_QUEUE", 256),
			env.GetInt("REFRESH_WORKERS", 2),
			searchDeps.RunRefresh,
		)
	}

	router := BuildRouter(searchDeps, httpapi.SuggestDeps{Store: st, Places: placesClient}, httpapi.ListingsDeps{Store: st})

	log.Printf("listing-search listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(router)); err != nil {
		log.Fatal(err)
	}
}
