package trade

import (
	"fmt"

	"github.com/ksred/barter-api/internal/types"
)

// Strategy names accepted by the HTTP facade.
const (
	StrategyStandard  = "standard"
	StrategyHighValue = "high_value"
)

// HighValueMinRarity is the rarity floor for high-value listings, on the
// catalog's 1..5 scale.
const HighValueMinRarity = 4

// Strategy decides whether a listing is well-formed before it is admitted to
// the marketplace. Strategies are pure functions of the listing's data plus
// the item catalog; they must not mutate their input.
type Strategy interface {
	// Evaluate returns false plus a human-readable reason when the listing
	// fails the strategy's rules.
	Evaluate(listing *types.Listing) (bool, string)
	Name() string
}

// StandardStrategy admits any listing with non-empty offered and wanted sets
// that are disjoint by item identity.
type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy {
	return &StandardStrategy{}
}

func (s *StandardStrategy) Name() string {
	return StrategyStandard
}

func (s *StandardStrategy) Evaluate(listing *types.Listing) (bool, string) {
	if len(listing.Offered) == 0 {
		return false, "listing must offer at least one item"
	}
	if len(listing.Wanted) == 0 {
		return false, "listing must want at least one item"
	}
	for _, itemID := range listing.Offered {
		if listing.Wanted.Contains(itemID) {
			return false, fmt.Sprintf("item %d appears in both offered and wanted sets", itemID)
		}
	}
	return true, ""
}

// HighValueStrategy applies all standard checks and additionally requires
// every referenced item to sit at or above the rarity floor. Items the
// catalog cannot resolve fail validation.
type HighValueStrategy struct {
	catalog   ItemCatalog
	minRarity int
}

func NewHighValueStrategy(catalog ItemCatalog) *HighValueStrategy {
	return &HighValueStrategy{
		catalog:   catalog,
		minRarity: HighValueMinRarity,
	}
}

func (s *HighValueStrategy) Name() string {
	return StrategyHighValue
}

func (s *HighValueStrategy) Evaluate(listing *types.Listing) (bool, string) {
	if ok, reason := (&StandardStrategy{}).Evaluate(listing); !ok {
		return false, reason
	}
	for _, set := range []types.ItemRefs{listing.Offered, listing.Wanted} {
		for _, itemID := range set {
			item, err := s.catalog.LookupItem(itemID)
			if err != nil {
				return false, fmt.Sprintf("failed to look up item %d", itemID)
			}
			if item == nil {
				return false, fmt.Sprintf("item %d is not in the catalog", itemID)
			}
			if item.Rarity < s.minRarity {
				return false, fmt.Sprintf("item %d has rarity %d, below the high-value floor of %d",
					itemID, item.Rarity, s.minRarity)
			}
		}
	}
	return true, ""
}
