package usecase

import (
	"fmt"

	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

// Catalog is the read-only tier table.
type Catalog struct {
	tiers []entity.Tier
	byID  map[entity.TierID]entity.Tier
}

// NewCatalog validates that tiers lists every known tier exactly once.
func NewCatalog(tiers []entity.Tier) (*Catalog, error) {
	byID := make(map[entity.TierID]entity.Tier, len(tiers))
	for _, tier := range tiers {
		if !tier.ID.Valid() {
			return nil, fmt.Errorf("unknown tier id %q", tier.ID)
		}
		if _, dup := byID[tier.ID]; dup {
			return nil, fmt.Errorf("duplicate tier id %q", tier.ID)
		}
		byID[tier.ID] = tier
	}
	for _, id := range entity.AllTierIDs() {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("catalog is missing tier %q", id)
		}
	}

	ordered := make([]entity.Tier, 0, len(byID))
	for _, id := range entity.AllTierIDs() {
		ordered = append(ordered, byID[id])
	}
	return &Catalog{tiers: ordered, byID: byID}, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(entity.DefaultTiers())
	if err != nil {
		panic(err)
	}
	return catalog
}

// Tiers returns every tier in entitlement order.
func (c *Catalog) Tiers() []entity.Tier {
	tiers := make([]entity.Tier, len(c.tiers))
	copy(tiers, c.tiers)
	return tiers
}

// Tier looks up id, returning ErrUnknownTier for anything outside the catalog.
func (c *Catalog) Tier(id entity.TierID) (entity.Tier, error) {
	tier, ok := c.byID[id]
	if !ok {
		return entity.Tier{}, fmt.Errorf("%w: %q", domainErrors.ErrUnknownTier, id)
	}
	return tier, nil
}
