package seed

import (
	"context"
	"fmt"

	"github.com/jaswdr/faker"

	"foodtrack/internal/service"
)

// collectedShare is the percentage of seeded collections marked collected.
const collectedShare = 70

// Collections creates n fake collection requests through svc and marks
// roughly 70% of them collected.
func Collections(ctx context.Context, svc *service.CollectionService, fake faker.Faker, n int) error {
	types := svc.WasteTypes()
	if len(types) == 0 {
		return fmt.Errorf("no waste types configured")
	}

	for i := 0; i < n; i++ {
		wt := types[fake.IntBetween(0, len(types)-1)]

		c, err := svc.Create(ctx, service.CreateCollectionInput{
			Location: fake.Address().Address(),
			TypeID:   wt.ID,
			WeightKg: fake.Float64(1, 1, 80),
		})
		if err != nil {
			return fmt.Errorf("create collection %d: %w", i, err)
		}

		if fake.IntBetween(1, 100) <= collectedShare {
			if _, err := svc.MarkCollected(ctx, c.ID); err != nil {
				return fmt.Errorf("collect %s: %w", c.ID, err)
			}
		}
	}

	return nil
}
