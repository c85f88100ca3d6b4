package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"foodtrack/internal/model"
)

type PostgresOrders struct {
	db *sql.DB
}

func NewPostgresOrders(db *sql.DB) *PostgresOrders {
	return &PostgresOrders{db: db}
}

const orderColumns = `id, restaurant_id, items, total, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	if err := row.Scan(&o.ID, &o.RestaurantID, &items, &o.Total, &o.Status, &o.Timestamp); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	o.Timestamp = o.Timestamp.UTC()
	return &o, nil
}

func (r *PostgresOrders) Create(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO orders (restaurant_id, items, total, status, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		order.RestaurantID, items, order.Total, string(order.Status), order.Timestamp,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *PostgresOrders) Get(ctx context.Context, id int64) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *PostgresOrders) Advance(ctx context.Context, id int64) (*model.Order, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	o, err := scanOrder(tx.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, false, fmt.Errorf("lock order: %w", err)
	}

	next := o.Status.Next()
	if next == o.Status {
		return o, false, nil
	}

	if _, err = tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(next), id); err != nil {
		return nil, false, fmt.Errorf("update order: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit tx: %w", err)
	}

	o.Status = next
	return o, true, nil
}

func (r *PostgresOrders) ListActive(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status <> $1 ORDER BY id`
	args := []any{string(model.StatusDelivered)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query active orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}
