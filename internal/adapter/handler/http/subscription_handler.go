package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/middleware/auth"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
)

// SubscriptionHandler serves the catalog and the caller's current plan
type SubscriptionHandler struct {
	logger        *zap.Logger
	catalog       *usecase.Catalog
	subscriptions *usecase.SubscriptionService
}

func NewSubscriptionHandler(logger *zap.Logger, catalog *usecase.Catalog, subscriptions *usecase.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		logger:        logger,
		catalog:       catalog,
		subscriptions: subscriptions,
	}
}

// GetTiers handles GET /api/v1/tiers
func (h *SubscriptionHandler) GetTiers(c echo.Context) error {
	tiers := h.catalog.Tiers()
	resp := make([]dto.TierDTO, 0, len(tiers))
	for _, tier := range tiers {
		resp = append(resp, dto.NewTierDTO(tier))
	}
	return c.JSON(http.StatusOK, echo.Map{"tiers": resp})
}

// GetCurrentSubscription handles GET /api/v1/subscriptions/current
func (h *SubscriptionHandler) GetCurrentSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriptions.GetCurrentSubscription(c.Request().Context(), user.UserID)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to get current subscription",
			zap.String("user_id", user.UserID))
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.NewSubscriptionDTO(sub))
}

// GetPricingOptions handles GET /api/v1/subscriptions/options
func (h *SubscriptionHandler) GetPricingOptions(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	current, err := h.subscriptions.GetCurrentTier(ctx, user.UserID)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to get current tier",
			zap.String("user_id", user.UserID))
		return apperrors.ToHTTPError(err)
	}

	options, err := h.subscriptions.PricingOptions(ctx, user.UserID)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to build pricing options",
			zap.String("user_id", user.UserID))
		return apperrors.ToHTTPError(err)
	}

	resp := dto.PricingOptionsResponse{
		CurrentTier: string(current),
		Options:     make([]dto.PricingOptionDTO, 0, len(options)),
	}
	for _, opt := range options {
		resp.Options = append(resp.Options, dto.PricingOptionDTO{
			Tier:    dto.NewTierDTO(opt.Tier),
			Current: opt.Current,
			Enabled: opt.Enabled,
			Label:   opt.Label,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
