package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/anistreamdev/anistream/config"
)

// Seeds a local database with the owner admin and a few catalog rows so the
// API has something to serve right after migrations.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set; nothing to seed")
	}
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	ownerOpenID := cfg.OwnerOpenID
	if ownerOpenID == "" {
		ownerOpenID = "seed-owner"
	}

	var adminID int64
	err = db.QueryRow(`
		INSERT INTO users (open_id, name, email, login_method, role)
		VALUES ($1, $2, $3, 'seed', 'admin')
		ON CONFLICT (open_id) DO UPDATE SET role = 'admin', updated_at = now()
		RETURNING id
	`, ownerOpenID, "Owner", "owner@example.com").Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed owner: %v", err)
	}
	fmt.Printf("seeded owner: id=%d open_id=%s role=admin\n", adminID, ownerOpenID)

	animes := []struct {
		title, description, genre, status string
		episodes, year, rating            int
		premium                           bool
	}{
		{"Steel Alchemist", "Two brothers chase a way to undo a terrible mistake.", "Action", "completed", 64, 2009, 92, false},
		{"Moonlit Courier", "A courier crosses a drowned city every night.", "Drama", "ongoing", 12, 2025, 80, true},
		{"Garden of Circuits", "A gardener tends machines that dream.", "Sci-Fi", "upcoming", 0, 2026, 0, false},
	}
	for _, a := range animes {
		var id int64
		err := db.QueryRow(`
			INSERT INTO animes (title, description, genre, episodes, status, release_year, rating, is_premium_only, uploaded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, a.title, a.description, a.genre, a.episodes, a.status, a.year, a.rating, a.premium, adminID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed anime %q: %v", a.title, err)
		}
		fmt.Printf("seeded anime: id=%d title=%q\n", id, a.title)
	}
}
