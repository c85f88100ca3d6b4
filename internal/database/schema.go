package database

import (
	"context"
	"database/sql"
	"fmt"

	"foodtrack/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS restaurants (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_items (
    restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
    id BIGINT NOT NULL,
    position INT NOT NULL,
    name TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
    PRIMARY KEY (restaurant_id, id)
);

CREATE TABLE IF NOT EXISTS orders (
    id BIGINT GENERATED BY DEFAULT AS IDENTITY (START WITH 1001) PRIMARY KEY,
    restaurant_id BIGINT NOT NULL,
    items JSONB NOT NULL,
    total DOUBLE PRECISION NOT NULL,
    status TEXT NOT NULL DEFAULT 'Order Placed',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS collections (
    id UUID PRIMARY KEY,
    location TEXT NOT NULL,
    type_id TEXT NOT NULL,
    weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'Pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    collected_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_collections_status ON collections(status);
`

func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// SeedCatalog inserts restaurants and their menus, leaving existing rows as they are.
func SeedCatalog(ctx context.Context, db *sql.DB, restaurants []model.Restaurant) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, r := range restaurants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO restaurants (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			r.ID, r.Name,
		)
		if err != nil {
			return fmt.Errorf("insert restaurant %d: %w", r.ID, err)
		}

		for pos, item := range r.Menu {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO menu_items (restaurant_id, id, position, name, price)
				 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (restaurant_id, id) DO NOTHING`,
				r.ID, item.ID, pos, item.Name, item.Price,
			)
			if err != nil {
				return fmt.Errorf("insert menu item %d/%d: %w", r.ID, item.ID, err)
			}
		}
	}

	return tx.Commit()
}
