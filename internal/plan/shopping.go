package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Category is a shopping item category. Only the seven fixed
// identifiers below are valid.
type Category string

const (
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategoryProduce    Category = "produce"
	CategoryPantry     Category = "pantry"
	CategoryFrozen     Category = "frozen"
	CategoryBakery     Category = "bakery"
	CategoryCondiments Category = "condiments"
)

// Categories lists all valid category identifiers in display order.
var Categories = []Category{
	CategoryDairy,
	CategoryMeat,
	CategoryProduce,
	CategoryPantry,
	CategoryFrozen,
	CategoryBakery,
	CategoryCondiments,
}

// IsValidCategory reports whether c is one of the seven categories.
func IsValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ShoppingItem is one entry of a shopping trip. Amount is free text
// ("600 г", "2 шт").
type ShoppingItem struct {
	Name     string   `json:"name"`
	Amount   string   `json:"amount"`
	Category Category `json:"category"`
	ForMeal  string   `json:"forMeal,omitempty"` // which dish needs it
}

// ShoppingItemWithID extends ShoppingItem with a deterministic id so a
// user's checked state survives a list regeneration that did not change
// the item.
type ShoppingItemWithID struct {
	ShoppingItem
	ID string `json:"id"`
}

// ShoppingTrip is a grouped subset of the list for one shopping outing.
type ShoppingTrip struct {
	Label string         `json:"label"`
	Items []ShoppingItem `json:"items"`
}

// ValidateTrips checks the structural invariants of a shopping list.
func ValidateTrips(trips []ShoppingTrip) error {
	for ti, trip := range trips {
		if trip.Label == "" {
			return fmt.Errorf("trip %d has no label", ti)
		}
		for ii, item := range trip.Items {
			if item.Name == "" {
				return fmt.Errorf("trip %d item %d has no name", ti, ii)
			}
			if !IsValidCategory(item.Category) {
				return fmt.Errorf("trip %d item %q: unknown category %q", ti, item.Name, item.Category)
			}
		}
	}
	return nil
}

// ItemID derives the deterministic identifier of an item inside the
// trip with the given index. Re-deriving ids over an unchanged list
// yields the same id set.
func ItemID(tripIndex int, item ShoppingItem) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s:%s:%s", tripIndex, item.Name, item.Amount, item.Category)))
	return hex.EncodeToString(sum[:])[:12]
}

// AssignItemIDs attaches deterministic ids to every item of every trip.
func AssignItemIDs(trips []ShoppingTrip) [][]ShoppingItemWithID {
	out := make([][]ShoppingItemWithID, len(trips))
	for ti, trip := range trips {
		items := make([]ShoppingItemWithID, len(trip.Items))
		for ii, item := range trip.Items {
			items[ii] = ShoppingItemWithID{ShoppingItem: item, ID: ItemID(ti, item)}
		}
		out[ti] = items
	}
	return out
}
