package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/yourorg/listing-search/internal/search"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE TABLE IF NOT EXISTS listings (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            title           TEXT NOT NULL,
            property_type   TEXT NOT NULL,
            rental_kind     TEXT NOT NULL DEFAULT 'long_term',
            price_per_night NUMERIC,
            price_per_month NUMERIC,
            city            TEXT,
            district        TEXT,
            address_text    TEXT,
            is_furnished    BOOLEAN NOT NULL DEFAULT false,
            capacity        SMALLINT NOT NULL DEFAULT 0,
            cover_photo_url TEXT,
            status          TEXT NOT NULL DEFAULT 'draft',
            created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_created ON listings(created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS listing_rooms (
            listing_id  UUID PRIMARY KEY REFERENCES listings(id) ON DELETE CASCADE,
            bedrooms    SMALLINT NOT NULL DEFAULT 0,
            bathrooms   SMALLINT NOT NULL DEFAULT 0,
            kitchen     SMALLINT NOT NULL DEFAULT 0,
            living_room SMALLINT NOT NULL DEFAULT 0,
            dining_room SMALLINT NOT NULL DEFAULT 0,
            toilets     SMALLINT NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS listing_features (
            listing_id      UUID PRIMARY KEY REFERENCES listings(id) ON DELETE CASCADE,
            has_ac          BOOLEAN NOT NULL DEFAULT false,
            has_wifi        BOOLEAN NOT NULL DEFAULT false,
            has_parking     BOOLEAN NOT NULL DEFAULT false,
            generator       BOOLEAN NOT NULL DEFAULT false,
            housekeeping    BOOLEAN NOT NULL DEFAULT false,
            prepay_meter    BOOLEAN NOT NULL DEFAULT false,
            sonnel_meter    BOOLEAN NOT NULL DEFAULT false,
            water_well      BOOLEAN NOT NULL DEFAULT false,
            water_heater    BOOLEAN NOT NULL DEFAULT false,
            security_guard  BOOLEAN NOT NULL DEFAULT false,
            cctv            BOOLEAN NOT NULL DEFAULT false,
            fan             BOOLEAN NOT NULL DEFAULT false,
            tv              BOOLEAN NOT NULL DEFAULT false,
            smart_tv        BOOLEAN NOT NULL DEFAULT false,
            netflix         BOOLEAN NOT NULL DEFAULT false,
            washing_machine BOOLEAN NOT NULL DEFAULT false,
            balcony         BOOLEAN NOT NULL DEFAULT false,
            terrace         BOOLEAN NOT NULL DEFAULT false,
            veranda         BOOLEAN NOT NULL DEFAULT false,
            mezzanine       BOOLEAN NOT NULL DEFAULT false,
            garden          BOOLEAN NOT NULL DEFAULT false,
            pool            BOOLEAN NOT NULL DEFAULT false,
            gym             BOOLEAN NOT NULL DEFAULT false,
            rooftop         BOOLEAN NOT NULL DEFAULT false,
            elevator        BOOLEAN NOT NULL DEFAULT false,
            accessible      BOOLEAN NOT NULL DEFAULT false,
            near_main_road  TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS listing_media (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            listing_id    UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
            media_url     TEXT NOT NULL,
            media_type    TEXT NOT NULL DEFAULT 'photo',
            position      INTEGER NOT NULL DEFAULT 0,
            thumbnail_url TEXT,
            created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_media_listing ON listing_media(listing_id, position);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

const publishedStatus = "published"

// FetchPublished loads the published candidate set newest-first, with room,
// feature and media sub-records attached. The scoring pass works over this
// slice in memory.
func (s *Store) FetchPublished(ctx context.Context, limit int) ([]*search.Listing, error) {
	if limit <= 0 {
		limit = 80
	}
	rows, err := s.DB.QueryContext(ctx, `
        SELECT l.id, l.title, l.property_type, l.rental_kind,
               COALESCE(l.price_per_night, 0), COALESCE(l.price_per_month, 0),
               COALESCE(l.city, ''), COALESCE(l.district, ''), COALESCE(l.address_text, ''),
               l.is_furnished, l.capacity, COALESCE(l.cover_photo_url, ''), l.created_at, l.status,
               r.bedrooms, r.bathrooms, r.kitchen, r.living_room, r.dining_room, r.toilets,
               f.has_ac, f.has_wifi, f.has_parking, f.generator, f.housekeeping,
               f.prepay_meter, f.sonnel_meter, f.water_well, f.water_heater,
               f.security_guard, f.cctv, f.fan, f.tv, f.smart_tv, f.netflix,
               f.washing_machine, f.balcony, f.terrace, f.veranda, f.mezzanine,
               f.garden, f.pool, f.gym, f.rooftop, f.elevator, f.accessible,
               COALESCE(f.near_main_road, '')
        FROM listings l
        LEFT JOIN listing_rooms r ON r.listing_id = l.id
        LEFT JOIN listing_features f ON f.listing_id = l.id
        WHERE l.status = $1
        ORDER BY l.created_at DESC
        LIMIT $2`, publishedStatus, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*search.Listing
	index := make(map[string]*search.Listing)
	for rows.Next() {
		var l search.Listing
		var rm roomsRow
		var ft featuresRow
		err := rows.Scan(
			&l.ID, &l.Title, &l.PropertyType, &l.RentalKind,
			&l.PricePerNight, &l.PricePerMonth,
			&l.City, &l.District, &l.AddressText,
			&l.IsFurnished, &l.Capacity, &l.CoverPhotoURL, &l.CreatedAt, &l.Status,
			&rm.bedrooms, &rm.bathrooms, &rm.kitchen, &rm.livingRoom, &rm.diningRoom, &rm.toilets,
			&ft.hasAC, &ft.hasWifi, &ft.hasParking, &ft.generator, &ft.housekeeping,
			&ft.prepayMeter, &ft.sonnelMeter, &ft.waterWell, &ft.waterHeater,
			&ft.securityGuard, &ft.cctv, &ft.fan, &ft.tv, &ft.smartTV, &ft.netflix,
			&ft.washingMachine, &ft.balcony, &ft.terrace, &ft.veranda, &ft.mezzanine,
			&ft.garden, &ft.pool, &ft.gym, &ft.rooftop, &ft.elevator, &ft.accessible,
			&ft.nearMainRoad,
		)
		if err != nil {
			return nil, err
		}
		l.Rooms = rm.toRooms()
		l.Features = ft.toFeatures()
		out = append(out, &l)
		index[l.ID] = out[len(out)-1]
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	media, err := s.DB.QueryContext(ctx, `
        SELECT m.listing_id, m.media_url, m.media_type, m.position, COALESCE(m.thumbnail_url, '')
        FROM listing_media m
        JOIN listings l ON l.id = m.listing_id
        WHERE l.status = $1
        ORDER BY m.listing_id, m.position`, publishedStatus)
	if err != nil {
		return nil, err
	}
	defer media.Close()
	for media.Next() {
		var listingID string
		var item search.MediaItem
		if err := media.Scan(&listingID, &item.URL, &item.MediaType, &item.Position, &item.ThumbnailURL); err != nil {
			return nil, err
		}
		if l, ok := index[listingID]; ok {
			l.Media = append(l.Media, item)
		}
	}
	return out, media.Err()
}

// roomsRow and featuresRow absorb the nullable columns of a LEFT JOIN;
// a listing without the sub-record keeps a nil pointer on the model.
type roomsRow struct {
	bedrooms, bathrooms, kitchen, livingRoom, diningRoom, toilets sql.NullInt64
}

func (r roomsRow) toRooms() *search.Rooms {
	if !r.bedrooms.Valid {
		return nil
	}
	return &search.Rooms{
		Bedrooms:   int(r.bedrooms.Int64),
		Bathrooms:  int(r.bathrooms.Int64),
		Kitchen:    int(r.kitchen.Int64),
		LivingRoom: int(r.livingRoom.Int64),
		DiningRoom: int(r.diningRoom.Int64),
		Toilets:    int(r.toilets.Int64),
	}
}

type featuresRow struct {
	hasAC, hasWifi, hasParking, generator, housekeeping          sql.NullBool
	prepayMeter, sonnelMeter, waterWell, waterHeater             sql.NullBool
	securityGuard, cctv, fan, tv, smartTV, netflix               sql.NullBool
	washingMachine, balcony, terrace, veranda, mezzanine, garden sql.NullBool
	pool, gym, rooftop, elevator, accessible                     sql.NullBool
	nearMainRoad                                                 string
}

func (f featuresRow) toFeatures() *search.Features {
	if !f.hasAC.Valid {
		return nil
	}
	return &search.Features{
		HasAC: f.hasAC.Bool, HasWifi: f.hasWifi.Bool, HasParking: f.hasParking.Bool,
		Generator: f.generator.Bool, Housekeeping: f.housekeeping.Bool,
		PrepayMeter: f.prepayMeter.Bool, SonnelMeter: f.sonnelMeter.Bool,
		WaterWell: f.waterWell.Bool, WaterHeater: f.waterHeater.Bool,
		SecurityGuard: f.securityGuard.Bool, CCTV: f.cctv.Bool, Fan: f.fan.Bool,
		TV: f.tv.Bool, SmartTV: f.smartTV.Bool, Netflix: f.netflix.Bool,
		WashingMachine: f.washingMachine.Bool, Balcony: f.balcony.Bool,
		Terrace: f.terrace.Bool, Veranda: f.veranda.Bool, Mezzanine: f.mezzanine.Bool,
		Garden: f.garden.Bool, Pool: f.pool.Bool, Gym: f.gym.Bool,
		Rooftop: f.rooftop.Bool, Elevator: f.elevator.Bool, Accessible: f.accessible.Bool,
		NearMainRoad: f.nearMainRoad,
	}
}

// AddressRow is one distinct published address used for suggestions.
type AddressRow struct {
	AddressText string
	District    string
	City        string
}

// FetchAddresses returns the distinct address tuples of published listings
// whose address, district or city matches the pattern (ILIKE, caller passes
// the raw query, wildcards added here).
func (s *Store) FetchAddresses(ctx context.Context, query string, limit int) ([]AddressRow, error) {
	if limit <= 0 {
		limit = 25
	}
	pattern := "%" + query + "%"
	rows, err := s.DB.QueryContext(ctx, `
        SELECT DISTINCT COALESCE(address_text, ''), COALESCE(district, ''), COALESCE(city, '')
        FROM listings
        WHERE status = $1
          AND (address_text ILIKE $2 OR district ILIKE $2 OR city ILIKE $2)
        LIMIT $3`, publishedStatus, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AddressRow
	for rows.Next() {
		var r AddressRow
		if err := rows.Scan(&r.AddressText, &r.District, &r.City); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertListing writes one listing with its sub-records, replacing any media
// set already stored. Used by the seeder and the persistence endpoint.
func (s *Store) UpsertListing(ctx context.Context, l *search.Listing) (string, error) {
	if s.DB == nil {
		return "", errors.New("nil db")
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id string
	err = tx.QueryRowContext(ctx, `
        INSERT INTO listings (id, title, property_type, rental_kind, price_per_night, price_per_month,
                              city, district, address_text, is_furnished, capacity, cover_photo_url, status)
        VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        ON CONFLICT (id)
        DO UPDATE SET title=EXCLUDED.title, property_type=EXCLUDED.property_type,
            rental_kind=EXCLUDED.rental_kind, price_per_night=EXCLUDED.price_per_night,
            price_per_month=EXCLUDED.price_per_month, city=EXCLUDED.city,
            district=EXCLUDED.district, address_text=EXCLUDED.address_text,
            is_furnished=EXCLUDED.is_furnished, capacity=EXCLUDED.capacity,
            cover_photo_url=EXCLUDED.cover_photo_url, status=EXCLUDED.status, updated_at=now()
        RETURNING id`,
		l.ID, l.Title, l.PropertyType, l.RentalKind, l.PricePerNight, l.PricePerMonth,
		l.City, l.District, l.AddressText, l.IsFurnished, l.Capacity, l.CoverPhotoURL, l.Status,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	if l.Rooms != nil {
		r := l.Rooms
		_, err = tx.ExecContext(ctx, `
            INSERT INTO listing_rooms (listing_id, bedrooms, bathrooms, kitchen, living_room, dining_room, toilets)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            ON CONFLICT (listing_id)
            DO UPDATE SET bedrooms=EXCLUDED.bedrooms, bathrooms=EXCLUDED.bathrooms,
                kitchen=EXCLUDED.kitchen, living_room=EXCLUDED.living_room,
                dining_room=EXCLUDED.dining_room, toilets=EXCLUDED.toilets`,
			id, r.Bedrooms, r.Bathrooms, r.Kitchen, r.LivingRoom, r.DiningRoom, r.Toilets)
		if err != nil {
			return "", err
		}
	}

	if l.Features != nil {
		f := l.Features
		_, err = tx.ExecContext(ctx, `
            INSERT INTO listing_features (listing_id, has_ac, has_wifi, has_parking, generator, housekeeping,
                prepay_meter, sonnel_meter, water_well, water_heater, security_guard, cctv, fan, tv,
                smart_tv, netflix, washing_machine, balcony, terrace, veranda, mezzanine, garden, pool,
                gym, rooftop, elevator, accessible, near_main_road)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,NULLIF($28, ''))
            ON CONFLICT (listing_id)
            DO UPDATE SET has_ac=EXCLUDED.has_ac, has_wifi=EXCLUDED.has_wifi,
                has_parking=EXCLUDED.has_parking, generator=EXCLUDED.generator,
                housekeeping=EXCLUDED.housekeeping, prepay_meter=EXCLUDED.prepay_meter,
                sonnel_meter=EXCLUDED.sonnel_meter, water_well=EXCLUDED.water_well,
                water_heater=EXCLUDED.water_heater, security_guard=EXCLUDED.security_guard,
                cctv=EXCLUDED.cctv, fan=EXCLUDED.fan, tv=EXCLUDED.tv, smart_tv=EXCLUDED.smart_tv,
                netflix=EXCLUDED.netflix, washing_machine=EXCLUDED.washing_machine,
                balcony=EXCLUDED.balcony, terrace=EXCLUDED.terrace, veranda=EXCLUDED.veranda,
                mezzanine=EXCLUDED.mezzanine, garden=EXCLUDED.garden, pool=EXCLUDED.pool,
                gym=EXCLUDED.gym, rooftop=EXCLUDED.rooftop, elevator=EXCLUDED.elevator,
                accessible=EXCLUDED.accessible, near_main_road=EXCLUDED.near_main_road`,
			id, f.HasAC, f.HasWifi, f.HasParking, f.Generator, f.Housekeeping,
			f.PrepayMeter, f.SonnelMeter, f.WaterWell, f.WaterHeater, f.SecurityGuard,
			f.CCTV, f.Fan, f.TV, f.SmartTV, f.Netflix, f.WashingMachine, f.Balcony,
			f.Terrace, f.Veranda, f.Mezzanine, f.Garden, f.Pool, f.Gym, f.Rooftop,
			f.Elevator, f.Accessible, f.NearMainRoad)
		if err != nil {
			return "", err
		}
	}

	// media: replace current set with new set
	if _, err = tx.ExecContext(ctx, `DELETE FROM listing_media WHERE listing_id=$1`, id); err != nil {
		return "", err
	}
	for i, m := range l.Media {
		if m.URL == "" {
			continue
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO listing_media (listing_id, media_url, media_type, position, thumbnail_url)
            VALUES ($1,$2,$3,$4,NULLIF($5, ''))`,
			id, m.URL, m.MediaType, i, m.ThumbnailURL)
		if err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}
