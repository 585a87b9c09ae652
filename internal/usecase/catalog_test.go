package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
)

func TestCatalog_DefaultTiers(t *testing.T) {
	catalog := usecase.DefaultCatalog()

	tiers := catalog.Tiers()
	require.Len(t, tiers, 5)
	for i, id := range entity.AllTierIDs() {
		assert.Equal(t, id, tiers[i].ID)
	}

	prices := map[entity.TierID]string{
		entity.TierFree:     "0.00",
		entity.TierStarter:  "299.00",
		entity.TierGrowth:   "599.00",
		entity.TierPro:      "999.00",
		entity.TierBizElite: "1999.00",
	}
	for id, price := range prices {
		tier, err := catalog.Tier(id)
		require.NoError(t, err)
		assert.Equal(t, price, tier.MonthlyPrice.StringFixed(2), id)
		assert.Equal(t, "PHP", tier.Currency)
	}

	_, err := catalog.Tier("lifetime")
	assert.ErrorIs(t, err, domainErrors.ErrUnknownTier)
}

func TestNewCatalog_Validation(t *testing.T) {
	tiers := entity.DefaultTiers()

	_, err := usecase.NewCatalog(tiers[:4])
	assert.Error(t, err, "missing tier")

	_, err = usecase.NewCatalog(append(entity.DefaultTiers(), tiers[1]))
	assert.Error(t, err, "duplicate tier")

	_, err = usecase.NewCatalog(append(entity.DefaultTiers(), entity.Tier{ID: "lifetime"}))
	assert.Error(t, err, "unknown tier")

	// order of the input does not matter
	reversed := []entity.Tier{tiers[4], tiers[3], tiers[2], tiers[1], tiers[0]}
	catalog, err := usecase.NewCatalog(reversed)
	require.NoError(t, err)
	assert.Equal(t, entity.TierFree, catalog.Tiers()[0].ID)
}

func TestTierOrdering(t *testing.T) {
	assert.True(t, entity.TierBizElite.Outranks(entity.TierPro))
	assert.True(t, entity.TierStarter.Outranks(entity.TierFree))
	assert.False(t, entity.TierStarter.Outranks(entity.TierGrowth))
	assert.False(t, entity.TierGrowth.Outranks(entity.TierGrowth))
	assert.False(t, entity.TierID("lifetime").Valid())
	assert.False(t, entity.TierFree.Paid())
}
