package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodtrack/internal/model"
)

type PostgresCatalog struct {
	db *sql.DB
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// ListRestaurants returns restaurants without their menus.
func (c *PostgresCatalog) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var r model.Restaurant
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return restaurants, nil
}

func (c *PostgresCatalog) GetRestaurant(ctx context.Context, id int64) (*model.Restaurant, error) {
	var r model.Restaurant
	err := c.db.QueryRowContext(ctx, `SELECT id, name FROM restaurants WHERE id = $1`, id).Scan(&r.ID, &r.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, price FROM menu_items WHERE restaurant_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		r.Menu = append(r.Menu, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return &r, nil
}
