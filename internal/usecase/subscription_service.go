package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
	"go.uber.org/zap"
)

// SubscriptionService answers entitlement questions from the subscription records.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	catalog       *Catalog
	logger        *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subscriptions repository.SubscriptionRepository, catalog *Catalog, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptions,
		catalog:       catalog,
		logger:        logger,
	}
}

// GetCurrentSubscription returns the user's subscription record, or nil when there is none.
func (s *SubscriptionService) GetCurrentSubscription(ctx context.Context, userID string) (*entity.Subscription, error) {
	sub, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
	}
	return sub, nil
}

// GetCurrentTier returns the stored subscription type, or free when the user has no
// record. A stored type outside the catalog also reads as free.
func (s *SubscriptionService) GetCurrentTier(ctx context.Context, userID string) (entity.TierID, error) {
	sub, err := s.GetCurrentSubscription(ctx, userID)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return entity.TierFree, nil
	}
	if !sub.Type.Valid() {
		s.logger.Warn("Subscription has unknown tier, treating as free",
			zap.String("user_id", userID),
			zap.String("subscription_type", string(sub.Type)))
		return entity.TierFree, nil
	}
	return sub.Type, nil
}

// PricingOptions describes every paid tier for userID. Only tiers above the current
// one are enabled; lower tiers keep their upgrade label but stay disabled.
func (s *SubscriptionService) PricingOptions(ctx context.Context, userID string) ([]entity.PricingOption, error) {
	current, err := s.GetCurrentTier(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pricingOptions(s.catalog.Tiers(), current), nil
}

func pricingOptions(tiers []entity.Tier, current entity.TierID) []entity.PricingOption {
	options := make([]entity.PricingOption, 0, len(tiers))
	for _, tier := range tiers {
		if !tier.ID.Paid() {
			continue
		}
		option := entity.PricingOption{
			Tier:    tier,
			Current: tier.ID == current,
			Enabled: tier.ID.Outranks(current),
		}
		if option.Current {
			option.Label = "Current Plan"
		} else {
			option.Label = "Upgrade to " + tier.Name
		}
		options = append(options, option)
	}
	return options
}
