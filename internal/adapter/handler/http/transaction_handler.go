package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/middleware/auth"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
)

// TransactionHandler lists the caller's payment transactions
type TransactionHandler struct {
	logger       *zap.Logger
	transactions *usecase.TransactionService
}

func NewTransactionHandler(logger *zap.Logger, transactions *usecase.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		logger:       logger,
		transactions: transactions,
	}
}

// ListTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var filters dto.TransactionFilters

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return apperrors.ToHTTPError(apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid limit parameter", err))
		}
		filters.Limit = limit
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return apperrors.ToHTTPError(apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid offset parameter", err))
		}
		filters.Offset = offset
	}

	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := entity.PaymentStatus(statusStr)
		switch status {
		case entity.PaymentStatusPending, entity.PaymentStatusCompleted, entity.PaymentStatusFailed, entity.PaymentStatusExpired:
			filters.Status = &status
		default:
			return apperrors.ToHTTPError(apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid status parameter", nil))
		}
	}

	resp, err := h.transactions.ListTransactions(c.Request().Context(), user.UserID, filters)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to list transactions",
			zap.String("user_id", user.UserID))
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, resp)
}
