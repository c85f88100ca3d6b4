package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"foodtrack/internal/database"
	"foodtrack/internal/model"
)

// Runs against a real database only when TEST_DATABASE_URI is set.
func TestPostgresRepositories(t *testing.T) {
	uri := os.Getenv("TEST_DATABASE_URI")
	if uri == "" {
		t.Skip("TEST_DATABASE_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewDB(ctx, uri)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if err := database.SeedCatalog(ctx, db, model.DefaultCatalog()); err != nil {
		t.Fatalf("SeedCatalog: %v", err)
	}

	t.Run("catalog", func(t *testing.T) {
		catalog := NewPostgresCatalog(db)
		r, err := catalog.GetRestaurant(ctx, 1)
		if err != nil {
			t.Fatalf("GetRestaurant: %v", err)
		}
		if len(r.Menu) != 3 || r.Menu[0].Name != "Zinger Burger" {
			t.Fatalf("unexpected menu: %+v", r.Menu)
		}
		if _, err := catalog.GetRestaurant(ctx, 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("orders", func(t *testing.T) {
		orders := NewPostgresOrders(db)
		o := newOrder()
		if err := orders.Create(ctx, o); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if o.ID < FirstOrderID {
			t.Fatalf("id %d below %d", o.ID, FirstOrderID)
		}

		for i := 0; i < 5; i++ {
			if _, _, err := orders.Advance(ctx, o.ID); err != nil {
				t.Fatalf("Advance: %v", err)
			}
		}
		got, err := orders.Get(ctx, o.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Status != model.StatusDelivered || len(got.Items) != 1 {
			t.Fatalf("unexpected order: %+v", got)
		}
	})

	t.Run("collections", func(t *testing.T) {
		collections := NewPostgresCollections(db)
		c := &model.Collection{
			ID:        uuid.NewString(),
			Location:  "Depot",
			TypeID:    "w3",
			WeightKg:  12.5,
			Status:    model.CollectionPending,
			CreatedAt: time.Now().UTC(),
		}
		if err := collections.Create(ctx, c); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, changed, err := collections.MarkCollected(ctx, c.ID, time.Now())
		if err != nil || !changed || got.Status != model.CollectionCollected {
			t.Fatalf("MarkCollected: %+v changed=%v err=%v", got, changed, err)
		}
		if _, err := collections.Get(ctx, "not-a-uuid"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
