package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodtrack/internal/model"
)

type PostgresCollections struct {
	db *sql.DB
}

func NewPostgresCollections(db *sql.DB) *PostgresCollections {
	return &PostgresCollections{db: db}
}

const collectionColumns = `id, location, type_id, weight_kg, status, created_at, collected_at`

func scanCollection(row rowScanner) (*model.Collection, error) {
	var (
		c           model.Collection
		collectedAt sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.Location, &c.TypeID, &c.WeightKg, &c.Status, &c.CreatedAt, &collectedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	if collectedAt.Valid {
		at := collectedAt.Time.UTC()
		c.CollectedAt = &at
	}
	return &c, nil
}

func (r *PostgresCollections) Create(ctx context.Context, c *model.Collection) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO collections (id, location, type_id, weight_kg, status, created_at)
		 VALUES ($1::text::uuid, $2, $3, $4, $5, $6)`,
		c.ID, c.Location, c.TypeID, c.WeightKg, string(c.Status), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (r *PostgresCollections) Get(ctx context.Context, id string) (*model.Collection, error) {
	c, err := scanCollection(r.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("collection %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return c, nil
}

func (r *PostgresCollections) List(ctx context.Context) ([]model.Collection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collections ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	var out []model.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, *c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return out, nil
}

func (r *PostgresCollections) MarkCollected(ctx context.Context, id string, at time.Time) (*model.Collection, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	c, err := scanCollection(tx.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id::text = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("collection %s: %w", id, ErrNotFound)
		}
		return nil, false, fmt.Errorf("lock collection: %w", err)
	}

	if c.Status == model.CollectionCollected {
		return c, false, nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE collections SET status = $1, collected_at = $2 WHERE id::text = $3`,
		string(model.CollectionCollected), at, c.ID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("update collection: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit tx: %w", err)
	}

	at = at.UTC()
	c.Status = model.CollectionCollected
	c.CollectedAt = &at
	return c, true, nil
}
