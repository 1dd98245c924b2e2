package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	httpapi "github.com/yourorg/listing-search/http"
	"github.com/yourorg/listing-search/internal/env"
	"github.com/yourorg/listing-search/internal/store"
)

// Seeder loads a JSON fixture of listings into Postgres. Used to bootstrap
// dev environments and demo data.
func main() {
	_ = godotenv.Load()

	dsn := env.Must("PG_DSN")
	path := env.Get("SEED_FILE", "fixtures/listings.json")

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read fixture %s: %v", path, err)
	}
	var payloads []httpapi.ListingPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		log.Fatalf("decode fixture: %v", err)
	}

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		log.Fatalf("postgres ping error: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("postgres migrate error: %v", err)
	}

	seeded := 0
	for i, p := range payloads {
		if p.Title == "" || p.PropertyType == "" {
			log.Printf("skipping fixture %d: title and property_type are required", i)
			continue
		}
		id, err := st.UpsertListing(ctx, p.ToListing())
		if err != nil {
			log.Fatalf("upsert fixture %d: %v", i, err)
		}
		seeded++
		log.Printf("seeded %s (%s)", id, p.Title)
	}
	log.Printf("done: %d/%d listings seeded from %s", seeded, len(payloads), path)
}
