package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/config"

	_ "github.com/lib/pq"
)

// MustOpenDB connects to Postgres, ensures the schema and logs fatally on error.
func MustOpenDB(cfg *config.Config) *sql.DB {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.URL,
		cfg.DB.Port,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("db.Ping: %v", err)
	}

	if err := ensureSchema(db); err != nil {
		log.Fatalf("ensureSchema: %v", err)
	}

	log.Println("Connected to Postgres")
	return db
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id                     TEXT PRIMARY KEY,
			email                  TEXT,
			plan                   TEXT NOT NULL DEFAULT 'FREE',
			stripe_customer_id     TEXT,
			stripe_subscription_id TEXT,
			requests_count         INT NOT NULL DEFAULT 0,
			last_request_date      TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS orders (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users (id),
			product_id  TEXT NOT NULL,
			category_id TEXT NOT NULL,
			amount_usd  NUMERIC(10,2) NOT NULL,
			amount_idr  BIGINT NOT NULL,
			status      TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}
