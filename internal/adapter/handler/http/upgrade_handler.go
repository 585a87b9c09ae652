package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/middleware/auth"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
)

// UpgradeHandler drives the upgrade workflow over HTTP. Each request carries the
// attempt it acts on, so no per-user state is held between calls.
type UpgradeHandler struct {
	workflow *usecase.UpgradeWorkflow
	logger   *zap.Logger
}

func NewUpgradeHandler(workflow *usecase.UpgradeWorkflow, logger *zap.Logger) *UpgradeHandler {
	return &UpgradeHandler{
		workflow: workflow,
		logger:   logger,
	}
}

// StartUpgrade handles POST /api/v1/upgrades
func (h *UpgradeHandler) StartUpgrade(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.StartUpgradeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	attempt, txn, err := h.workflow.StartUpgrade(c.Request().Context(), user.Identity(), entity.TierID(req.TierID))
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to start upgrade",
			zap.String("user_id", user.UserID),
			zap.String("tier_id", req.TierID))
		return apperrors.ToHTTPError(err)
	}

	h.logger.Info("Upgrade started",
		zap.String("user_id", user.UserID),
		zap.String("transaction_id", txn.ID),
		zap.String("tier_id", string(txn.TierID)))

	return c.JSON(http.StatusCreated, dto.StartUpgradeResponse{
		Attempt:     dto.NewAttemptDTO(attempt),
		Transaction: dto.NewPaymentTransactionDTO(txn),
		PaymentURL:  attempt.PaymentURL,
	})
}

// SubmitReference handles POST /api/v1/upgrades/:transactionId/reference
func (h *UpgradeHandler) SubmitReference(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	transactionID := c.Param("transactionId")
	var req dto.SubmitReferenceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	attempt, err := h.workflow.Resume(ctx, user.Identity(), transactionID)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to resume upgrade",
			zap.String("user_id", user.UserID),
			zap.String("transaction_id", transactionID))
		return apperrors.ToHTTPError(err)
	}

	// blank references are rejected by the workflow so the message matches the prompt
	next, sub, err := h.workflow.SubmitReference(ctx, attempt, req.Reference)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to submit payment reference",
			zap.String("user_id", user.UserID),
			zap.String("transaction_id", transactionID),
			zap.String("state", string(next.State)))
		if errors.Is(err, domainErrors.ErrPaymentNotVerified) {
			return c.JSON(http.StatusPaymentRequired, echo.Map{
				"error":   apperrors.ToHTTPError(err).Message,
				"code":    apperrors.ErrPaymentRejected,
				"attempt": dto.NewAttemptDTO(next),
			})
		}
		return apperrors.ToHTTPError(err)
	}

	h.logger.Info("Upgrade completed",
		zap.String("user_id", user.UserID),
		zap.String("transaction_id", transactionID),
		zap.String("subscription_type", string(sub.Type)))

	return c.JSON(http.StatusOK, dto.SubmitReferenceResponse{
		Attempt:      dto.NewAttemptDTO(next),
		Subscription: dto.NewSubscriptionDTO(sub),
	})
}
