package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied at startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               UUID PRIMARY KEY,
		email            TEXT NOT NULL UNIQUE,
		name             TEXT NOT NULL,
		photo_url        TEXT NOT NULL DEFAULT '',
		role             TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'pending',
		suspended_reason TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                     UUID PRIMARY KEY,
		name                   TEXT NOT NULL,
		description            TEXT NOT NULL DEFAULT '',
		category               TEXT NOT NULL,
		price_cents            BIGINT NOT NULL,
		available_quantity     INT NOT NULL,
		minimum_order_quantity INT NOT NULL,
		images                 TEXT[] NOT NULL,
		demo_video             TEXT NOT NULL DEFAULT '',
		payment_options        TEXT NOT NULL,
		show_on_home           BOOLEAN NOT NULL DEFAULT false,
		created_by             UUID NOT NULL,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                UUID PRIMARY KEY,
		product_id        UUID NOT NULL,
		product_name      TEXT NOT NULL,
		buyer_email       TEXT NOT NULL,
		first_name        TEXT NOT NULL,
		last_name         TEXT NOT NULL,
		contact_number    TEXT NOT NULL,
		delivery_address  TEXT NOT NULL,
		additional_notes  TEXT NOT NULL DEFAULT '',
		quantity          INT NOT NULL,
		order_price_cents BIGINT NOT NULL,
		payment_method    TEXT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'pending',
		rejection_reason  TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		approved_at       TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_buyer_email ON orders (buyer_email)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
	`CREATE TABLE IF NOT EXISTS order_tracking (
		order_id   UUID NOT NULL REFERENCES orders(id),
		seq        INT NOT NULL,
		status     TEXT NOT NULL,
		location   TEXT NOT NULL DEFAULT '',
		note       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (order_id, seq)
	)`,
}

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
