package plan

import "testing"

func sampleTrips() []ShoppingTrip {
	return []ShoppingTrip{
		{
			Label: "Закупка 1 (Пн-Чт)",
			Items: []ShoppingItem{
				{Name: "Яйца", Amount: "10 шт", Category: CategoryDairy},
				{Name: "Куриное филе", Amount: "600 г", Category: CategoryMeat, ForMeal: "Карри"},
			},
		},
		{
			Label: "Закупка 2 (Пт-Вс)",
			Items: []ShoppingItem{
				{Name: "Яйца", Amount: "10 шт", Category: CategoryDairy},
			},
		},
	}
}

func TestValidateTrips(t *testing.T) {
	if err := ValidateTrips(sampleTrips()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("rejects missing label", func(t *testing.T) {
		trips := sampleTrips()
		trips[0].Label = ""
		if err := ValidateTrips(trips); err == nil {
			t.Fatal("expected error for missing label")
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		trips := sampleTrips()
		trips[1].Items[0].Category = "electronics"
		if err := ValidateTrips(trips); err == nil {
			t.Fatal("expected error for unknown category")
		}
	})

	t.Run("rejects unnamed item", func(t *testing.T) {
		trips := sampleTrips()
		trips[0].Items[1].Name = ""
		if err := ValidateTrips(trips); err == nil {
			t.Fatal("expected error for unnamed item")
		}
	})
}

func TestItemID(t *testing.T) {
	item := ShoppingItem{Name: "Яйца", Amount: "10 шт", Category: CategoryDairy}

	t.Run("deterministic", func(t *testing.T) {
		if ItemID(0, item) != ItemID(0, item) {
			t.Fatal("same input produced different ids")
		}
	})

	t.Run("12 hex characters", func(t *testing.T) {
		id := ItemID(0, item)
		if len(id) != 12 {
			t.Fatalf("id %q has length %d", id, len(id))
		}
	})

	t.Run("trip index is part of the identity", func(t *testing.T) {
		if ItemID(0, item) == ItemID(1, item) {
			t.Fatal("same item in different trips shares an id")
		}
	})

	t.Run("forMeal does not affect the id", func(t *testing.T) {
		annotated := item
		annotated.ForMeal = "Омлет"
		if ItemID(0, item) != ItemID(0, annotated) {
			t.Fatal("forMeal changed the id")
		}
	})

	t.Run("amount change gives a new id", func(t *testing.T) {
		changed := item
		changed.Amount = "20 шт"
		if ItemID(0, item) == ItemID(0, changed) {
			t.Fatal("amount change kept the id")
		}
	})
}

// A regenerated list with unchanged items must carry the same ids, so
// the user's checked state survives the regeneration.
func TestAssignItemIDsStableAcrossRegeneration(t *testing.T) {
	first := AssignItemIDs(sampleTrips())
	second := AssignItemIDs(sampleTrips())

	for ti := range first {
		for ii := range first[ti] {
			if first[ti][ii].ID != second[ti][ii].ID {
				t.Errorf("trip %d item %d: id changed from %s to %s",
					ti, ii, first[ti][ii].ID, second[ti][ii].ID)
			}
		}
	}
}
