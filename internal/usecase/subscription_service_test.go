package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
)

func TestSubscriptionService_PricingOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("pro user can only pick biz elite", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("GetByUserID", mock.Anything, "u1").
			Return(&entity.Subscription{UserID: "u1", Type: entity.TierPro}, nil)
		service := usecase.NewSubscriptionService(repo, usecase.DefaultCatalog(), zap.NewNop())

		options, err := service.PricingOptions(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, options, 4)

		byTier := make(map[entity.TierID]entity.PricingOption)
		for _, option := range options {
			byTier[option.Tier.ID] = option
		}

		assert.True(t, byTier[entity.TierPro].Current)
		assert.False(t, byTier[entity.TierPro].Enabled)
		assert.Equal(t, "Current Plan", byTier[entity.TierPro].Label)

		assert.True(t, byTier[entity.TierBizElite].Enabled)
		assert.Equal(t, "Upgrade to BIZ ELITE", byTier[entity.TierBizElite].Label)

		assert.False(t, byTier[entity.TierStarter].Enabled)
		assert.False(t, byTier[entity.TierGrowth].Enabled)
		assert.False(t, byTier[entity.TierGrowth].Current)
	})

	t.Run("free user can pick every paid tier", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("GetByUserID", mock.Anything, "u2").Return(nil, nil)
		service := usecase.NewSubscriptionService(repo, usecase.DefaultCatalog(), zap.NewNop())

		options, err := service.PricingOptions(ctx, "u2")
		require.NoError(t, err)
		for _, option := range options {
			assert.True(t, option.Enabled, option.Tier.ID)
			assert.False(t, option.Current, option.Tier.ID)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("GetByUserID", mock.Anything, "u1").Return(nil, errors.New("timeout"))
		service := usecase.NewSubscriptionService(repo, usecase.DefaultCatalog(), zap.NewNop())

		_, err := service.PricingOptions(ctx, "u1")
		assert.ErrorIs(t, err, domainErrors.ErrStoreUnavailable)
	})
}

func TestSubscriptionService_GetCurrentTier_UnknownStoredType(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	repo.On("GetByUserID", mock.Anything, "u1").
		Return(&entity.Subscription{UserID: "u1", Type: entity.TierID("lifetime")}, nil)
	service := usecase.NewSubscriptionService(repo, usecase.DefaultCatalog(), zap.NewNop())

	tier, err := service.GetCurrentTier(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.TierFree, tier)
}
